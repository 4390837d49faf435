package recommend

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/smartserve/backend/internal/core/model"
	"github.com/smartserve/backend/internal/embed"
)

// Index is one immutable snapshot of the searchable menu corpus. A
// rebuild constructs a whole new Index and swaps the reference; an
// Index is never mutated after construction.
type Index struct {
	Items  []model.MenuItem
	Corpus []string

	// Dense holds one embedding per item, nil when no embedding
	// backend produced vectors for this snapshot. DenseUnit holds the
	// L2-normalized copies used by the flat tier.
	Dense     [][]float32
	DenseUnit [][]float32

	Lex *lexicalIndex
}

// corpusText builds the natural-language document for one item.
func corpusText(it model.MenuItem) string {
	return fmt.Sprintf("%s %s", it.Name, strings.Join(it.Tags, " "))
}

// buildIndex constructs a full snapshot from the menu. The lexical
// side always succeeds; dense encoding failures are logged and leave
// Dense nil, which the dense tiers report as unusable at request time.
func buildIndex(ctx context.Context, items []model.MenuItem, embedder embed.Embedder) *Index {
	corpus := make([]string, len(items))
	for i, it := range items {
		corpus[i] = corpusText(it)
	}

	idx := &Index{
		Items:  items,
		Corpus: corpus,
		Lex:    buildLexicalIndex(corpus),
	}

	if embedder == nil || len(corpus) == 0 {
		return idx
	}

	vectors, err := embedder.EmbedBatch(ctx, corpus)
	if err != nil {
		log.Printf("recommendation: corpus encoding failed, dense tiers disabled for this snapshot: %v", err)
		return idx
	}
	idx.Dense = vectors
	idx.DenseUnit = make([][]float32, len(vectors))
	for i, v := range vectors {
		idx.DenseUnit[i] = normalizeVector(v)
	}
	return idx
}

func normalizeVector(v []float32) []float32 {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	out := make([]float32, len(v))
	if norm == 0 {
		copy(out, v)
		return out
	}
	n := float32(math.Sqrt(norm))
	for i, x := range v {
		out[i] = x / n
	}
	return out
}

// rank holds a candidate during top-k selection.
type rank struct {
	index int
	score float32
}

// topK sorts candidates by descending score; equal scores keep menu
// order, so results are deterministic for a given index and query.
func topK(ranks []rank, k int) []int {
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].score != ranks[j].score {
			return ranks[i].score > ranks[j].score
		}
		return ranks[i].index < ranks[j].index
	})
	if k > len(ranks) {
		k = len(ranks)
	}
	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = ranks[i].index
	}
	return out
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func euclidean(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return float32(math.Sqrt(float64(sum)))
}
