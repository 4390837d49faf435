// Package verify compares a ticket's expected items against detection
// output and derives the resulting fulfillment status.
package verify

import (
	"fmt"

	"github.com/smartserve/backend/internal/core/model"
)

// Policy selects the status rule applied to the expected/detected
// comparison.
type Policy string

const (
	// PolicyStrict requires exact set equality: anything missing or
	// unexpected is a mismatch.
	PolicyStrict Policy = "strict"
	// PolicyTolerant only requires every expected item to be present;
	// extras are tolerated.
	PolicyTolerant Policy = "tolerant"
)

// ParsePolicy validates a configured policy name.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyStrict, PolicyTolerant:
		return Policy(s), nil
	case "":
		return PolicyStrict, nil
	}
	return "", fmt.Errorf("unknown verification policy: %s", s)
}

// Match compares the ticket's expected items against one detection
// pass. Comparison is label-string equality after normalization; no
// fuzzy matching.
func Match(ticket *model.Ticket, detected model.DetectionResult, policy Policy) model.VerificationOutcome {
	expected := make([]string, 0, len(ticket.Items))
	seen := make(map[string]struct{}, len(ticket.Items))
	for _, it := range ticket.Items {
		norm := model.NormalizeLabel(it)
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		expected = append(expected, norm)
	}

	missing := make([]string, 0)
	for _, e := range expected {
		if !detected.Contains(e) {
			missing = append(missing, e)
		}
	}
	extra := make([]string, 0)
	for _, d := range detected.Labels() {
		if _, ok := seen[d]; !ok {
			extra = append(extra, d)
		}
	}

	outcome := model.VerificationOutcome{
		TicketID: ticket.ID,
		Expected: expected,
		Detected: detected.Labels(),
		Missing:  missing,
		Extra:    extra,
	}

	switch policy {
	case PolicyTolerant:
		if len(missing) == 0 {
			outcome.Status = model.StatusReady
			outcome.Verified = true
		} else {
			outcome.Status = model.StatusHeld
		}
	default:
		if len(missing) == 0 && len(extra) == 0 {
			outcome.Status = model.StatusVerified
			outcome.Verified = true
		} else {
			outcome.Status = model.StatusMismatch
		}
	}
	return outcome
}
