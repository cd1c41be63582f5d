package geom

import (
	"slices"

	"github.com/osuushi/genart/aabb"
)

func (p Polygon) Len() int {
	return len(p.Points)
}

// Index of the vertex after i, wrapping around.
func (p Polygon) Next(i int) int {
	return CircularIndex(i+1, len(p.Points))
}

// Index of the vertex before i, wrapping around.
func (p Polygon) Prev(i int) int {
	return CircularIndex(i-1, len(p.Points))
}

// The edge from vertex i to the vertex after it.
func (p Polygon) Edge(i int) Line {
	return Line{p.Points[i], p.Points[p.Next(i)]}
}

func (p Polygon) Edges() []Line {
	edges := make([]Line, len(p.Points))
	for i := range p.Points {
		edges[i] = p.Edge(i)
	}
	return edges
}

func (p Polygon) Area() float64 {
	return Area(p)
}

func (p Polygon) Bounds() aabb.Aabb {
	return Bounds(p)
}

// Reverse returns a copy of the polygon with the winding direction flipped.
func (p Polygon) Reverse() Polygon {
	points := slices.Clone(p.Points)
	slices.Reverse(points)
	return Polygon{Points: points}
}

// Transform returns a copy of the polygon with f applied to every vertex.
// Transforms that mirror the plane flip the winding direction.
func (p Polygon) Transform(f func(Point) Point) Polygon {
	points := make([]Point, len(p.Points))
	for i, point := range p.Points {
		points[i] = f(point)
	}
	return Polygon{Points: points}
}

// Counterclockwise returns the polygon, reversed if needed so that it winds
// counterclockwise.
func (p Polygon) Counterclockwise() Polygon {
	if IsCW(p) {
		return p.Reverse()
	}
	return p
}

// Even-odd rule. Points exactly on the boundary may go either way.
func (p Polygon) ContainsPoint(point Point) bool {
	inside := false
	for i, a := range p.Points {
		b := p.Points[p.Next(i)]
		if (a.Y > point.Y) != (b.Y > point.Y) {
			x := a.X + (point.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if point.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// IsSimple reports whether the polygon has at least 3 vertices and no edge
// touches any other edge except its two neighbors at their shared vertices.
func (p Polygon) IsSimple() bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	edges := p.Edges()
	for i := range edges {
		if edges[i].isDegenerate() {
			return false
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			intersection := edges[i].Intersection(edges[j])
			adjacent := j == i+1 || (i == 0 && j == n-1)
			if adjacent {
				// Neighbors always share a vertex, but must not fold back over each
				// other.
				if intersection.Kind == CollinearIntersection {
					return false
				}
				continue
			}
			if intersection.Kind != NoIntersection {
				return false
			}
		}
	}
	return true
}

// InCone reports whether the segment from vertex a to vertex b starts out
// inside the polygon's interior angle at a. The polygon must be
// counterclockwise.
func (p Polygon) InCone(a, b int) bool {
	aPrev := p.Points[p.Prev(a)]
	aNext := p.Points[p.Next(a)]
	pa, pb := p.Points[a], p.Points[b]
	l := Line{pa, pb}

	if (Line{pa, aNext}).IsLeft(aPrev) {
		// Convex vertex: the diagonal must be between the two edges.
		return l.IsLeft(aPrev) && l.IsRight(aNext)
	}
	// Reflex vertex: the diagonal must not be inside the exterior (convex)
	// cone. Collinearity is allowed here since the whole test is negated.
	return !(l.IsLeftOrCollinear(aNext) && l.IsRightOrCollinear(aPrev))
}

// IsDiagonal reports whether the segment between vertices a and b lies
// strictly inside the polygon. The polygon must be counterclockwise and simple.
func (p Polygon) IsDiagonal(a, b int) bool {
	return p.InCone(a, b) && p.InCone(b, a) && p.crossesNoEdges(a, b)
}

func (p Polygon) crossesNoEdges(a, b int) bool {
	l := Line{p.Points[a], p.Points[b]}
	for i := range p.Points {
		j := p.Next(i)
		if i == a || i == b || j == a || j == b {
			continue
		}
		if l.ImproperlyIntersects(p.Edge(i)) {
			return false
		}
	}
	return true
}

func (t Triangle) Area() float64 {
	return Area(t)
}

func (t Triangle) Bounds() aabb.Aabb {
	return aabb.ForVertices(t.A, t.B, t.C)
}

func (t Triangle) Polygon() Polygon {
	return Polygon{Points: t.Vertices()}
}

// ImproperlyContainsPoint reports whether p is inside the triangle or on its
// boundary. The triangle must be counterclockwise.
func (t Triangle) ImproperlyContainsPoint(p Point) bool {
	return (Line{t.A, t.B}).IsLeftOrCollinear(p) &&
		(Line{t.B, t.C}).IsLeftOrCollinear(p) &&
		(Line{t.C, t.A}).IsLeftOrCollinear(p)
}
