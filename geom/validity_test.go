package geom

// This contains no actual tests. It is just a helper for testing triangulation
// validity.

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
)

// Helper to check that a triangulation is valid. The rules are:
// 1. There are exactly n-2 triangles.
// 2. The set of points in the triangles equals the set of points in the polygon.
// 3. Every polygon edge is an edge of some triangle.
// 4. Every triangle is counterclockwise, with nonzero area.
// 5. The sum of the areas of all triangles equals the area of the polygon.
func AssertValidTriangulation(t *testing.T, polygon Polygon, triangles []Triangle) {
	t.Helper()
	require.Len(t, triangles, len(polygon.Points)-2, "triangles: %# v", pretty.Formatter(triangles))

	polyPoints := make(map[Point]struct{})
	for _, p := range polygon.Points {
		polyPoints[p] = struct{}{}
	}
	trianglePoints := make(map[Point]struct{})
	segments := make(map[[2]Point]struct{})
	addSegment := func(a, b Point) {
		if compareLexicographic(a, b) > 0 {
			a, b = b, a
		}
		segments[[2]Point{a, b}] = struct{}{}
	}

	var triangleArea float64
	for _, tri := range triangles {
		for _, p := range tri.Vertices() {
			trianglePoints[p] = struct{}{}
		}
		require.Greater(t, Area2(tri.A, tri.B, tri.C), Tolerance, "clockwise or degenerate triangle: %s", tri)
		triangleArea += tri.Area()
		addSegment(tri.A, tri.B)
		addSegment(tri.B, tri.C)
		addSegment(tri.C, tri.A)
	}
	require.Equal(t, polyPoints, trianglePoints, "set of points in the triangles must equal the set of points in the polygon")

	for _, edge := range polygon.Edges() {
		a, b := edge.A, edge.B
		if compareLexicographic(a, b) > 0 {
			a, b = b, a
		}
		_, ok := segments[[2]Point{a, b}]
		require.True(t, ok, "polygon edge %s is not an edge of any triangle", edge)
	}

	require.InDelta(t, polygon.Area(), triangleArea, 1e-6, "sum of the areas of all triangles must equal the area of the polygon")
}
