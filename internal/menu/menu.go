// Package menu owns the menu corpus, the mock inventory feed and the
// mock per-user order history. Items are immutable for the process
// lifetime; pipelines treat everything here as read-only.
package menu

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/smartserve/backend/internal/core/model"
)

// Loader serves menu data to the pipelines.
type Loader struct {
	items []model.MenuItem
}

// NewLoader reads the menu from a JSON file, or falls back to the
// built-in menu when no path is given.
func NewLoader(path string) (*Loader, error) {
	if path == "" {
		return &Loader{items: defaultMenu}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file '%s': %w", path, err)
	}
	var items []model.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse menu file '%s': %w", path, err)
	}
	log.Printf("Loaded %d menu items from %s", len(items), path)
	return &Loader{items: items}, nil
}

// Items returns the full menu in declaration order.
func (l *Loader) Items() []model.MenuItem {
	out := make([]model.MenuItem, len(l.items))
	copy(out, l.items)
	return out
}

// Inventory reports per-item availability. Mock feed: everything in
// the menu is available.
func (l *Loader) Inventory() map[string]bool {
	inv := make(map[string]bool, len(l.items))
	for _, it := range l.items {
		inv[it.ID] = true
	}
	return inv
}

// History returns the mock order history for a user.
func (l *Loader) History(user string) []string {
	return mockHistory[user]
}

var mockHistory = map[string][]string{
	"anonymous":      {"burger", "fries"},
	"returning_user": {"cheese_burger", "cola"},
	"veg_user":       {"salad", "soup"},
}
