package model

// MenuItem is one orderable item. Menu data is immutable for the
// lifetime of the process; pipelines treat items as read-only.
type MenuItem struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Tags  []string `json:"tags"`
}

// HasTag reports whether the item carries the given tag.
func (m MenuItem) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
