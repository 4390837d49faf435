package model

// Recommendation is one ranked menu item with a human-readable reason.
type Recommendation struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Reason string  `json:"reason"`
	Score  float64 `json:"score,omitempty"`
}
