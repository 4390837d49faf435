package menu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMenu(t *testing.T) {
	l, err := NewLoader("")
	require.NoError(t, err)

	items := l.Items()
	assert.NotEmpty(t, items)

	seen := make(map[string]bool)
	for _, it := range items {
		assert.False(t, seen[it.ID], "duplicate menu id %s", it.ID)
		seen[it.ID] = true
		assert.NotEmpty(t, it.Name)
		assert.Greater(t, it.Price, 0.0)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	l, err := NewLoader("")
	require.NoError(t, err)

	items := l.Items()
	items[0].ID = "mutated"
	assert.NotEqual(t, "mutated", l.Items()[0].ID)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.json")
	data := `[{"id":"burger","name":"Classic Burger","price":6.99,"tags":["main","hot"]}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	l, err := NewLoader(path)
	require.NoError(t, err)
	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "burger", items[0].ID)
	assert.Equal(t, []string{"main", "hot"}, items[0].Tags)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestInventoryCoversMenu(t *testing.T) {
	l, err := NewLoader("")
	require.NoError(t, err)

	inv := l.Inventory()
	for _, it := range l.Items() {
		assert.True(t, inv[it.ID])
	}
}

func TestHistory(t *testing.T) {
	l, err := NewLoader("")
	require.NoError(t, err)

	assert.Equal(t, []string{"burger", "fries"}, l.History("anonymous"))
	assert.Empty(t, l.History("unknown_user"))
}
