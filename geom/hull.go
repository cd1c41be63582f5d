package geom

import (
	"slices"

	"github.com/osuushi/genart/aabb"
)

// Hull computes the convex hull of the points with Andrew's monotone chain.
//
// The result is counterclockwise, starts at the lexicographically smallest
// point (by X, then Y), and excludes points which lie on the hull's boundary
// without being corners. Duplicates are ignored. With fewer than two points the
// input is returned as is, and when every point is collinear the result is the
// two extreme points.
func Hull(points []Point) []Point {
	if len(points) < 2 {
		return slices.Clone(points)
	}

	sorted := slices.Clone(points)
	slices.SortFunc(sorted, compareLexicographic)
	sorted = slices.Compact(sorted)
	if len(sorted) < 3 {
		return sorted
	}

	hull := make([]Point, 0, 2*len(sorted))
	// Lower chain, then upper chain. Each only keeps left turns.
	for _, p := range sorted {
		hull = appendTurningLeft(hull, 0, p)
	}
	lowerLen := len(hull)
	for i := len(sorted) - 2; i >= 0; i-- {
		hull = appendTurningLeft(hull, lowerLen-1, sorted[i])
	}
	// The last point is the first one again.
	return hull[:len(hull)-1]
}

// Pops points off the end of hull (but not at or before floor) until p makes a
// strict left turn, then appends p.
func appendTurningLeft(hull []Point, floor int, p Point) []Point {
	for len(hull)-floor >= 2 && Area2(hull[len(hull)-2], hull[len(hull)-1], p) <= Tolerance {
		hull = hull[:len(hull)-1]
	}
	return append(hull, p)
}

// A convex polygon, wound counterclockwise with no collinear vertices.
type ConvexPolygon struct {
	polygon Polygon
}

// NewConvexPolygon returns the hull of the points as a polygon. It returns
// false if the hull has fewer than 3 vertices.
func NewConvexPolygon(points []Point) (ConvexPolygon, bool) {
	hull := Hull(points)
	if len(hull) < 3 {
		return ConvexPolygon{}, false
	}
	return ConvexPolygon{Polygon{Points: hull}}, true
}

func (c ConvexPolygon) Polygon() Polygon {
	return Polygon{Points: slices.Clone(c.polygon.Points)}
}

func (c ConvexPolygon) Vertices() []Point {
	return c.polygon.Points
}

func (c ConvexPolygon) Bounds() aabb.Aabb {
	return c.polygon.Bounds()
}

// ContainsPoint reports whether p is strictly inside the polygon. Points on
// the boundary are not contained.
func (c ConvexPolygon) ContainsPoint(p Point) bool {
	for _, edge := range c.polygon.Edges() {
		if !edge.IsLeft(p) {
			return false
		}
	}
	return true
}

// ImproperlyContainsPoint reports whether p is inside the polygon or on its
// boundary.
func (c ConvexPolygon) ImproperlyContainsPoint(p Point) bool {
	for _, edge := range c.polygon.Edges() {
		if !edge.IsLeftOrCollinear(p) {
			return false
		}
	}
	return true
}
