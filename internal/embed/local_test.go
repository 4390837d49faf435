package embed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanPool_MaskedTokensIgnored(t *testing.T) {
	// Two tokens of dim 2; the second is padding.
	hidden := []float32{2, 4, 100, 100}
	mask := []int64{1, 0}

	vec := meanPool(hidden, mask, 2)

	// Mean is (2, 4), normalized.
	n := float32(math.Sqrt(2*2 + 4*4))
	assert.InDelta(t, 2/n, vec[0], 1e-6)
	assert.InDelta(t, 4/n, vec[1], 1e-6)
}

func TestMeanPool_UnitNorm(t *testing.T) {
	hidden := []float32{1, 2, 3, 4, 5, 6}
	mask := []int64{1, 1, 1}

	vec := meanPool(hidden, mask, 2)
	var norm float64
	for _, x := range vec {
		norm += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, norm, 1e-6)
}

func TestMeanPool_AllMasked(t *testing.T) {
	vec := meanPool([]float32{1, 2}, []int64{0}, 2)
	assert.Equal(t, []float32{0, 0}, vec)
}
