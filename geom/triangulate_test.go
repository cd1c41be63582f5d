package geom

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/osuushi/genart/aabb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangulate(t *testing.T) {
	t.Run("square", func(t *testing.T) {
		square := Polygon{Points: []Point{pt(0, 0), pt(2, 0), pt(2, 2), pt(0, 2)}}
		triangles, err := Triangulate(square)
		require.NoError(t, err)
		require.Len(t, triangles, 2)
		assert.InDelta(t, 4.0, triangles[0].Area()+triangles[1].Area(), 1e-12)
		AssertValidTriangulation(t, square, triangles)
	})

	t.Run("triangle", func(t *testing.T) {
		tri := Polygon{Points: []Point{pt(0, 0), pt(1, 0), pt(0, 1)}}
		triangles, err := tri.Triangulate()
		require.NoError(t, err)
		assert.Equal(t, []Triangle{{pt(0, 1), pt(0, 0), pt(1, 0)}}, triangles)
	})

	t.Run("clockwise input", func(t *testing.T) {
		square := Polygon{Points: []Point{pt(0, 0), pt(0, 2), pt(2, 2), pt(2, 0)}}
		triangles, err := Triangulate(square)
		require.NoError(t, err)
		AssertValidTriangulation(t, square.Reverse(), triangles)
		assert.Equal(t, pt(0, 0), square.Points[0], "input unchanged")
	})

	t.Run("star", func(t *testing.T) {
		star := simpleStar()
		triangles, err := Triangulate(star)
		require.NoError(t, err)
		AssertValidTriangulation(t, star, triangles)
	})

	t.Run("collinear vertices", func(t *testing.T) {
		p := Polygon{Points: []Point{pt(0, 0), pt(1, 0), pt(2, 0), pt(3, 0), pt(3, 1), pt(0, 1)}}
		triangles, err := Triangulate(p)
		require.NoError(t, err)
		AssertValidTriangulation(t, p, triangles)
	})

	t.Run("random polygons", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(42, 1))
		region := aabb.New(pt(0, 0), pt(100, 100))
		for _, n := range []int{3, 4, 5, 10, 50, 150} {
			for range 10 {
				p, err := RandomPolygon(rng, region, n)
				require.NoError(t, err)
				triangles, err := Triangulate(p)
				require.NoError(t, err, "%v", p)
				AssertValidTriangulation(t, p, triangles)
			}
		}
	})
}

func TestTriangulateErrors(t *testing.T) {
	t.Run("too few vertices", func(t *testing.T) {
		_, err := Triangulate(Polygon{Points: []Point{pt(0, 0), pt(1, 1)}})
		assert.ErrorIs(t, err, ErrInvalidPolygon)
		_, err = Triangulate(Polygon{})
		assert.ErrorIs(t, err, ErrInvalidPolygon)
	})

	t.Run("collinear", func(t *testing.T) {
		// The ring doubles back over itself.
		_, err := Triangulate(Polygon{Points: []Point{pt(0, 0), pt(1, 1), pt(2, 2)}})
		assert.ErrorIs(t, err, ErrSelfIntersectingPolygon)
	})

	t.Run("self intersecting", func(t *testing.T) {
		_, err := Triangulate(Polygon{Points: []Point{pt(0, 0), pt(4, 2), pt(4, 0), pt(0, 3)}})
		assert.ErrorIs(t, err, ErrSelfIntersectingPolygon)
	})

	t.Run("symmetric bowtie", func(t *testing.T) {
		// The two lobes cancel, so the signed area is zero.
		bowtie := Polygon{Points: []Point{pt(0, 0), pt(2, 2), pt(2, 0), pt(0, 2)}}
		require.Zero(t, SignedArea(bowtie))
		_, err := Triangulate(bowtie)
		assert.ErrorIs(t, err, ErrSelfIntersectingPolygon)
		assert.NotErrorIs(t, err, ErrDegenerateTriangle)
	})
}

// Some ad hoc fixtures

func simpleStar() Polygon {
	var points []Point
	const outerRadius = 5
	const innerRadius = 2
	for i := 0; i < 10; i++ {
		var radius float64
		if i%2 == 0 {
			radius = outerRadius
		} else {
			radius = innerRadius
		}
		angle := 2 * math.Pi * float64(i) / 10
		points = append(points, Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
	}
	return Polygon{points}
}
