package recommend

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// lexicalIndex is a term-frequency vectorization of the corpus with
// cosine similarity search. It needs no external model, so it backs
// the terminal recommendation tier.
type lexicalIndex struct {
	vocab   map[string]int
	vectors [][]float32 // L2-normalized term-frequency vectors
}

func tokenize(text string) []string {
	text = strings.ToLower(norm.NFKC.String(text))
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func buildLexicalIndex(corpus []string) *lexicalIndex {
	vocab := make(map[string]int)
	tokenized := make([][]string, len(corpus))
	for i, doc := range corpus {
		tokens := tokenize(doc)
		tokenized[i] = tokens
		for _, t := range tokens {
			if _, ok := vocab[t]; !ok {
				vocab[t] = len(vocab)
			}
		}
	}

	idx := &lexicalIndex{
		vocab:   vocab,
		vectors: make([][]float32, len(corpus)),
	}
	for i, tokens := range tokenized {
		idx.vectors[i] = idx.vectorize(tokens)
	}
	return idx
}

func (l *lexicalIndex) vectorize(tokens []string) []float32 {
	vec := make([]float32, len(l.vocab))
	for _, t := range tokens {
		if i, ok := l.vocab[t]; ok {
			vec[i]++
		}
	}
	var nsq float64
	for _, x := range vec {
		nsq += float64(x) * float64(x)
	}
	if nsq > 0 {
		n := float32(math.Sqrt(nsq))
		for i := range vec {
			vec[i] /= n
		}
	}
	return vec
}

// search returns the indices of the k most similar documents. A query
// sharing no terms with the corpus (or an empty corpus) yields the
// first k documents in corpus order, so the caller always gets an
// answer.
func (l *lexicalIndex) search(query string, k int) []int {
	if len(l.vectors) == 0 {
		return nil
	}
	if k > len(l.vectors) {
		k = len(l.vectors)
	}

	qv := l.vectorize(tokenize(query))
	ranks := make([]rank, len(l.vectors))
	var any bool
	for i, dv := range l.vectors {
		score := dot(qv, dv)
		if score > 0 {
			any = true
		}
		ranks[i] = rank{index: i, score: score}
	}
	if !any {
		// Fixed-size prefix of the raw corpus, unranked.
		out := make([]int, k)
		for i := range out {
			out[i] = i
		}
		return out
	}
	return topK(ranks, k)
}
