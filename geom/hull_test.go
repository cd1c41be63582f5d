package geom

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHull(t *testing.T) {
	t.Run("square with interior point", func(t *testing.T) {
		hull := Hull([]Point{pt(0, 0), pt(1, 0), pt(1, 1), pt(0, 1), pt(0.5, 0.5)})
		assert.Equal(t, []Point{pt(0, 0), pt(1, 0), pt(1, 1), pt(0, 1)}, hull)
	})

	t.Run("input order doesn't matter", func(t *testing.T) {
		hull := Hull([]Point{pt(0.5, 0.5), pt(0, 1), pt(1, 1), pt(0, 0), pt(1, 0)})
		assert.Equal(t, []Point{pt(0, 0), pt(1, 0), pt(1, 1), pt(0, 1)}, hull)
	})

	t.Run("empty and single", func(t *testing.T) {
		assert.Empty(t, Hull(nil))
		assert.Equal(t, []Point{pt(3, 4)}, Hull([]Point{pt(3, 4)}))
	})

	t.Run("two points", func(t *testing.T) {
		assert.Equal(t, []Point{pt(0, 5), pt(1, 0)}, Hull([]Point{pt(1, 0), pt(0, 5)}))
	})

	t.Run("duplicates", func(t *testing.T) {
		assert.Equal(t, []Point{pt(1, 1)}, Hull([]Point{pt(1, 1), pt(1, 1), pt(1, 1)}))
		hull := Hull([]Point{pt(0, 0), pt(2, 0), pt(0, 0), pt(0, 2), pt(2, 0)})
		assert.Equal(t, []Point{pt(0, 0), pt(2, 0), pt(0, 2)}, hull)
	})

	t.Run("collinear points give the extremes", func(t *testing.T) {
		hull := Hull([]Point{pt(2, 2), pt(0, 0), pt(3, 3), pt(1, 1)})
		assert.Equal(t, []Point{pt(0, 0), pt(3, 3)}, hull)

		vertical := Hull([]Point{pt(0, 2), pt(0, -1), pt(0, 7)})
		assert.Equal(t, []Point{pt(0, -1), pt(0, 7)}, vertical)
	})

	t.Run("points on edges are excluded", func(t *testing.T) {
		hull := Hull([]Point{pt(0, 0), pt(1, 0), pt(2, 0), pt(2, 1), pt(2, 2), pt(1, 2), pt(0, 2), pt(0, 1)})
		assert.Equal(t, []Point{pt(0, 0), pt(2, 0), pt(2, 2), pt(0, 2)}, hull)
	})

	t.Run("doesn't modify the input", func(t *testing.T) {
		input := []Point{pt(1, 1), pt(0, 0), pt(1, 0)}
		original := slices.Clone(input)
		Hull(input)
		assert.Equal(t, original, input)
	})
}

func TestHullProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for trial := range 50 {
		n := 1 + rng.IntN(100)
		points := make([]Point, n)
		for i := range points {
			points[i] = pt(rng.NormFloat64()*10, rng.NormFloat64()*10)
		}
		hull := Hull(points)
		if len(hull) < 3 {
			continue
		}

		// Starts at the lexicographic minimum
		for _, p := range points {
			assert.LessOrEqual(t, compareLexicographic(hull[0], p), 0, "trial %d", trial)
		}

		convex, ok := NewConvexPolygon(points)
		require.True(t, ok)
		assert.True(t, IsCCW(convex.Polygon()))

		// Convexity: every vertex turns strictly left
		for i := range hull {
			a, b, c := hull[i], hull[CircularIndex(i+1, len(hull))], hull[CircularIndex(i+2, len(hull))]
			assert.Greater(t, Area2(a, b, c), Tolerance, "trial %d: reflex or collinear hull vertex %v", trial, b)
		}

		// Every input point is inside or on the hull
		for _, p := range points {
			assert.True(t, convex.ImproperlyContainsPoint(p), "trial %d: %v outside hull", trial, p)
		}

		// Minimality: removing any vertex excludes that vertex
		for i := range hull {
			reduced := slices.Delete(slices.Clone(hull), i, i+1)
			if len(reduced) < 3 {
				continue
			}
			smaller := ConvexPolygon{Polygon{Points: reduced}}
			assert.False(t, smaller.ImproperlyContainsPoint(hull[i]), "trial %d: hull vertex %d is redundant", trial, i)
		}
	}
}

func TestConvexPolygon(t *testing.T) {
	_, ok := NewConvexPolygon([]Point{pt(0, 0), pt(1, 1), pt(2, 2)})
	assert.False(t, ok)

	square, ok := NewConvexPolygon([]Point{pt(0, 0), pt(2, 0), pt(2, 2), pt(0, 2), pt(1, 1)})
	require.True(t, ok)
	assert.Len(t, square.Vertices(), 4)
	assert.InDelta(t, 4.0, square.Polygon().Area(), 1e-12)

	assert.True(t, square.ContainsPoint(pt(1, 1)))
	assert.False(t, square.ContainsPoint(pt(2, 1)))
	assert.False(t, square.ContainsPoint(pt(0, 0)))
	assert.True(t, square.ImproperlyContainsPoint(pt(2, 1)))
	assert.True(t, square.ImproperlyContainsPoint(pt(0, 0)))
	assert.False(t, square.ImproperlyContainsPoint(pt(3, 1)))
	// On the line through an edge, but past its end
	assert.False(t, square.ImproperlyContainsPoint(pt(3, 0)))
}
