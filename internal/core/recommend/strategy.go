// Package recommend ranks menu items for a guest. Two independent
// strategies exist behind one interface: capability-tiered semantic
// search over an embedding index, and a deterministic rule-based
// scorer. Configuration picks the active one.
package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/smartserve/backend/internal/core/model"
)

// Request carries one recommendation query.
type Request struct {
	User         string
	Profile      string
	Timestamp    string
	ContextItems []string
	TopK         int
}

// Strategy is a ranking strategy. Implementations never fail for
// well-formed input; an empty result list is the degraded answer.
type Strategy interface {
	Recommend(ctx context.Context, req Request) ([]model.Recommendation, error)
}

// BuildQuery flattens a request into the natural-language query string
// consumed by the search tiers.
func BuildQuery(req Request) string {
	parts := []string{fmt.Sprintf("profile: %s", req.Profile)}
	if len(req.ContextItems) > 0 {
		parts = append(parts, "contains: "+strings.Join(req.ContextItems, " "))
	}
	if req.Timestamp != "" {
		parts = append(parts, fmt.Sprintf("time: %s", req.Timestamp))
	}
	return strings.Join(parts, " | ")
}

// reason explains one recommended item relative to the active ticket.
func reason(it model.MenuItem, contextItems []string) string {
	for _, ci := range contextItems {
		if ci == it.ID || it.HasTag(ci) {
			return "Complements your order"
		}
	}
	return "Matches your context"
}
