package detect

// Hints accepted by the mock tier. Each keys a fixed, deterministic
// label set for driving demo scenarios without any model.
const (
	HintFriesMissing = "fries_missing"
	HintOnlyDrink    = "only_drink"
	HintEverythingOK = "everything_ok"
)

var mockResults = map[string][]string{
	HintFriesMissing: {"burger"},
	HintOnlyDrink:    {"cola"},
	HintEverythingOK: {"burger", "fries", "cola"},
}

var mockDefault = []string{"burger", "fries"}

// MockDetect is the terminal detection tier. It performs no I/O and
// cannot fail.
func MockDetect(hint string) []string {
	if labels, ok := mockResults[hint]; ok {
		out := make([]string, len(labels))
		copy(out, labels)
		return out
	}
	out := make([]string, len(mockDefault))
	copy(out, mockDefault)
	return out
}
