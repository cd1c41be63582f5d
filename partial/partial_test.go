package partial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	nan := math.NaN()
	assert.Equal(t, Less, Compare(1.0, 2.0))
	assert.Equal(t, Greater, Compare(2.0, 1.0))
	assert.Equal(t, Equal, Compare(2.0, 2.0))
	assert.Equal(t, Incomparable, Compare(nan, 1.0))
	assert.Equal(t, Incomparable, Compare(1.0, nan))
	assert.Equal(t, Incomparable, Compare(nan, nan))
	assert.Equal(t, Less, Compare("a", "b"))
}

func TestMin(t *testing.T) {
	nan := math.NaN()
	t.Run("comparable", func(t *testing.T) {
		assert.Equal(t, 1.0, Min(1.0, 2.0))
		assert.Equal(t, 1.0, Min(2.0, 1.0))
		assert.Equal(t, -3, Min(-3, 7))
		assert.Equal(t, math.Inf(-1), Min(0, math.Inf(-1)))
	})

	t.Run("incomparable returns the second argument", func(t *testing.T) {
		assert.True(t, math.IsNaN(Min(0.0, nan)))
		assert.Equal(t, 0.0, Min(nan, 0.0))
	})

	t.Run("equal returns the second argument", func(t *testing.T) {
		// 0 and -0 compare equal but are distinguishable by sign
		assert.True(t, math.Signbit(Min(0.0, math.Copysign(0, -1))))
		assert.False(t, math.Signbit(Min(math.Copysign(0, -1), 0.0)))
	})
}

func TestMax(t *testing.T) {
	nan := math.NaN()
	t.Run("comparable", func(t *testing.T) {
		assert.Equal(t, 2.0, Max(1.0, 2.0))
		assert.Equal(t, 2.0, Max(2.0, 1.0))
		assert.Equal(t, 7, Max(-3, 7))
	})

	t.Run("incomparable returns the second argument", func(t *testing.T) {
		assert.True(t, math.IsNaN(Max(0.0, nan)))
		assert.Equal(t, 0.0, Max(nan, 0.0))
	})
}

type version struct {
	branch string
	n      int
}

// Versions on different branches can't be ordered.
func compareVersions(a, b version) Ordering {
	if a.branch != b.branch {
		return Incomparable
	}
	return Compare(a.n, b.n)
}

func TestMinMaxFunc(t *testing.T) {
	a1 := version{"a", 1}
	a2 := version{"a", 2}
	b1 := version{"b", 1}

	assert.Equal(t, a1, MinFunc(a1, a2, compareVersions))
	assert.Equal(t, a2, MaxFunc(a1, a2, compareVersions))
	assert.Equal(t, b1, MinFunc(a1, b1, compareVersions))
	assert.Equal(t, a1, MaxFunc(b1, a1, compareVersions))
}
