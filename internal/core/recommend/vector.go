package recommend

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/smartserve/backend/internal/core/capability"
	"github.com/smartserve/backend/internal/core/model"
	"github.com/smartserve/backend/internal/embed"
)

const (
	TierDenseFlat  = "dense-flat"
	TierDenseBrute = "dense-brute"
	TierLexical    = "lexical"
)

// VectorStrategy ranks items by semantic similarity between the query
// text and the menu corpus, degrading from dense-embedding search to
// lexical term matching.
type VectorStrategy struct {
	menu     func() []model.MenuItem
	embedder embed.Embedder
	executor *capability.Executor[string, []model.MenuItem]
	topK     int

	index   atomic.Pointer[Index]
	buildMu sync.Mutex
}

func NewVectorStrategy(menuSource func() []model.MenuItem, embedder embed.Embedder,
	registry *capability.Registry, timeout time.Duration, topK int) *VectorStrategy {

	s := &VectorStrategy{
		menu:     menuSource,
		embedder: embedder,
		topK:     topK,
	}

	embedderProbe := func() error {
		if s.embedder == nil {
			return fmt.Errorf("no embedding backend configured")
		}
		return nil
	}

	tiers := []capability.Tier[string, []model.MenuItem]{
		{
			Name:  TierDenseFlat,
			Probe: embedderProbe,
			Run:   s.searchDenseFlat,
		},
		{
			Name:  TierDenseBrute,
			Probe: embedderProbe,
			Run:   s.searchDenseBrute,
		},
		{
			Name: TierLexical,
			Run:  s.searchLexical,
		},
	}

	s.executor = capability.NewExecutor("recommendation", registry, timeout, tiers...)
	return s
}

// Recommend runs the tiered search and assembles the ranked answer.
func (s *VectorStrategy) Recommend(ctx context.Context, req Request) ([]model.Recommendation, error) {
	if req.TopK <= 0 {
		req.TopK = s.topK
	}
	query := BuildQuery(req)

	items, err := s.executor.Execute(ctx, query)
	if err != nil {
		// Unreachable short of a defect in the lexical tier.
		log.Printf("recommendation: executor failed: %v", err)
		return []model.Recommendation{}, nil
	}
	if len(items) > req.TopK {
		items = items[:req.TopK]
	}

	out := make([]model.Recommendation, 0, len(items))
	for _, it := range items {
		out = append(out, model.Recommendation{
			ID:     it.ID,
			Name:   it.Name,
			Reason: reason(it, req.ContextItems),
		})
	}
	return out, nil
}

// ServedBy reports which search tier served the most recent request.
func (s *VectorStrategy) ServedBy() string {
	return s.executor.ServedBy()
}

// Rebuild constructs a fresh index snapshot from the current menu and
// swaps it in atomically. Searches in flight keep reading the old
// snapshot.
func (s *VectorStrategy) Rebuild(ctx context.Context) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()
	idx := buildIndex(ctx, s.menu(), s.embedder)
	s.index.Store(idx)
	log.Printf("recommendation: index rebuilt with %d items (dense=%t)", len(idx.Items), idx.Dense != nil)
}

// ensure builds the index on first use.
func (s *VectorStrategy) ensure(ctx context.Context) *Index {
	if idx := s.index.Load(); idx != nil {
		return idx
	}
	s.buildMu.Lock()
	defer s.buildMu.Unlock()
	if idx := s.index.Load(); idx != nil {
		return idx
	}
	idx := buildIndex(ctx, s.menu(), s.embedder)
	s.index.Store(idx)
	log.Printf("recommendation: index built with %d items (dense=%t)", len(idx.Items), idx.Dense != nil)
	return idx
}

func (s *VectorStrategy) searchDenseFlat(ctx context.Context, query string) ([]model.MenuItem, error) {
	idx := s.ensure(ctx)
	if idx.DenseUnit == nil {
		return nil, fmt.Errorf("no dense vectors in current snapshot")
	}
	qv, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query encoding failed: %w", err)
	}
	qunit := normalizeVector(qv)

	ranks := make([]rank, len(idx.DenseUnit))
	for i, dv := range idx.DenseUnit {
		ranks[i] = rank{index: i, score: dot(qunit, dv)}
	}
	return pick(idx, topK(ranks, s.topK)), nil
}

func (s *VectorStrategy) searchDenseBrute(ctx context.Context, query string) ([]model.MenuItem, error) {
	idx := s.ensure(ctx)
	if idx.Dense == nil {
		return nil, fmt.Errorf("no dense vectors in current snapshot")
	}
	qv, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query encoding failed: %w", err)
	}

	ranks := make([]rank, len(idx.Dense))
	for i, dv := range idx.Dense {
		// Exhaustive scan; negate distance so topK picks nearest.
		ranks[i] = rank{index: i, score: -euclidean(qv, dv)}
	}
	return pick(idx, topK(ranks, s.topK)), nil
}

// searchLexical is the terminal tier: pure computation over request-
// local data and one immutable snapshot. It must not fail, so it never
// waits on the build lock; with no snapshot yet it searches an
// ephemeral lexical index built inline.
func (s *VectorStrategy) searchLexical(ctx context.Context, query string) ([]model.MenuItem, error) {
	idx := s.index.Load()
	if idx == nil {
		items := s.menu()
		corpus := make([]string, len(items))
		for i, it := range items {
			corpus[i] = corpusText(it)
		}
		idx = &Index{Items: items, Corpus: corpus, Lex: buildLexicalIndex(corpus)}
	}
	return pick(idx, idx.Lex.search(query, s.topK)), nil
}

func pick(idx *Index, indices []int) []model.MenuItem {
	out := make([]model.MenuItem, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(idx.Items) {
			out = append(out, idx.Items[i])
		}
	}
	return out
}
