package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDetectionResult(t *testing.T) {
	res := NewDetectionResult([]string{"Burger", "burger", "  FRIES ", "", "cola"})

	assert.Equal(t, 3, res.Len())
	assert.Equal(t, []string{"burger", "cola", "fries"}, res.Labels())
	assert.True(t, res.Contains("BURGER"))
	assert.False(t, res.Contains("salad"))
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "burger", NormalizeLabel(" Burger "))
	assert.Equal(t, "", NormalizeLabel("   "))
}

func TestMenuItemHasTag(t *testing.T) {
	it := MenuItem{ID: "x", Tags: []string{"veg", "healthy"}}
	assert.True(t, it.HasTag("veg"))
	assert.False(t, it.HasTag("hot"))
}
