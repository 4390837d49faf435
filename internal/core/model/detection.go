package model

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DetectionResult is a duplicate-free set of lowercase item labels
// produced by one detection pass. It carries no ordering guarantee.
type DetectionResult struct {
	labels map[string]struct{}
}

// NewDetectionResult builds a result from raw labels, normalizing each
// to NFKC lowercase and dropping empties and duplicates.
func NewDetectionResult(labels []string) DetectionResult {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		l = NormalizeLabel(l)
		if l == "" {
			continue
		}
		set[l] = struct{}{}
	}
	return DetectionResult{labels: set}
}

// NormalizeLabel canonicalizes a label for set comparison.
func NormalizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	return norm.NFKC.String(label)
}

// Contains reports set membership for a normalized label.
func (d DetectionResult) Contains(label string) bool {
	_, ok := d.labels[NormalizeLabel(label)]
	return ok
}

// Len returns the number of distinct labels.
func (d DetectionResult) Len() int {
	return len(d.labels)
}

// Labels returns the labels sorted, for stable serialization and logs.
func (d DetectionResult) Labels() []string {
	out := make([]string, 0, len(d.labels))
	for l := range d.labels {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// VerificationOutcome is the derived result of comparing a ticket's
// expected items against a detection pass. Persisting it is the
// caller's concern.
type VerificationOutcome struct {
	TicketID int64        `json:"ticket_id"`
	Expected []string     `json:"expected"`
	Detected []string     `json:"detected"`
	Missing  []string     `json:"missing"`
	Extra    []string     `json:"extra"`
	Status   TicketStatus `json:"status"`
	Verified bool         `json:"verified"`
}
