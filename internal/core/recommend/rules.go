package recommend

import (
	"context"
	"sort"
	"time"

	"github.com/smartserve/backend/internal/core/model"
)

// RulesStrategy scores every menu item with four independent signals:
// time-of-day fit, profile fit, purchase-history fit and inventory
// availability. It needs no ML backend and never fails.
type RulesStrategy struct {
	menu      func() []model.MenuItem
	inventory func() map[string]bool
	history   func(user string) []string
	now       func() time.Time
	topK      int
}

func NewRulesStrategy(menuSource func() []model.MenuItem, inventory func() map[string]bool,
	history func(user string) []string, topK int) *RulesStrategy {
	return &RulesStrategy{
		menu:      menuSource,
		inventory: inventory,
		history:   history,
		now:       time.Now,
		topK:      topK,
	}
}

func (s *RulesStrategy) Recommend(_ context.Context, req Request) ([]model.Recommendation, error) {
	topK := req.TopK
	if topK <= 0 {
		topK = s.topK
	}

	hour := s.hourOf(req.Timestamp)
	inventory := s.inventory()
	history := s.history(req.User)

	type scored struct {
		item  model.MenuItem
		index int
		score int
	}
	var candidates []scored

	for i, it := range s.menu() {
		if !inventory[it.ID] {
			// Unavailable items are excluded outright, not merely
			// ranked last.
			continue
		}

		score := scoreByTime(it, hour) + scoreByProfile(it, req.Profile) + scoreByHistory(it, history) + availableBoost

		for _, ci := range req.ContextItems {
			if ci == "burger" && it.ID == "fries" {
				score += 8
			}
			if ci == "salad" && it.ID == "soup" {
				score += 5
			}
		}

		candidates = append(candidates, scored{item: it, index: i, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].index < candidates[j].index
	})
	if topK > len(candidates) {
		topK = len(candidates)
	}

	out := make([]model.Recommendation, 0, topK)
	for _, c := range candidates[:topK] {
		out = append(out, model.Recommendation{
			ID:     c.item.ID,
			Name:   c.item.Name,
			Reason: "Recommended based on context",
			Score:  float64(c.score),
		})
	}
	return out, nil
}

func (s *RulesStrategy) hourOf(timestamp string) int {
	if timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, timestamp); err == nil {
			return ts.Hour()
		}
	}
	return s.now().Hour()
}

const availableBoost = 5

func scoreByTime(it model.MenuItem, hour int) int {
	switch {
	case hour >= 7 && hour <= 10 && it.HasTag("light"):
		return 2
	case hour >= 11 && hour <= 14 && it.HasTag("main"):
		return 5
	case hour >= 18 && hour <= 21 && it.HasTag("hot"):
		return 3
	}
	return 1
}

func scoreByProfile(it model.MenuItem, profile string) int {
	switch {
	case profile == "veg" && it.HasTag("veg"):
		return 7
	case profile == "new":
		return 2
	case profile == "returning":
		return 3
	}
	return 1
}

func scoreByHistory(it model.MenuItem, history []string) int {
	for _, h := range history {
		if h == it.ID {
			return 4
		}
	}
	for _, h := range history {
		if h == "burger" && it.ID == "fries" {
			return 6
		}
	}
	return 1
}
