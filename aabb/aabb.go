// Two dimensional axis-aligned bounding boxes, and a tree of them for finding
// overlapping shapes quickly.
package aabb

import (
	"fmt"

	"github.com/osuushi/genart/partial"
	"github.com/quasilyte/gmath"
)

// An axis-aligned bounding box. The zero value is the degenerate box at the
// origin.
type Aabb struct {
	min, max gmath.Vec
}

// Things that know their own bounding box. This should be the fastest way to
// get a box for the type, rather than building one from sampled vertices.
type Bounded interface {
	Bounds() Aabb
}

// New constructs a box from its corners. min must not be greater than max on
// either axis.
func New(min, max gmath.Vec) Aabb {
	if min.X > max.X || min.Y > max.Y {
		panic(fmt.Sprintf("aabb: min %v is greater than max %v", min, max))
	}
	return Aabb{min: min, max: max}
}

// ForVertices returns the smallest box containing every vertex. It panics if
// no vertices are given.
func ForVertices(vertices ...gmath.Vec) Aabb {
	if len(vertices) == 0 {
		panic("aabb: must have at least one vertex to create a bounding box")
	}
	min, max := vertices[0], vertices[0]
	for _, v := range vertices[1:] {
		min.X = partial.Min(min.X, v.X)
		min.Y = partial.Min(min.Y, v.Y)
		max.X = partial.Max(max.X, v.X)
		max.Y = partial.Max(max.Y, v.Y)
	}
	return New(min, max)
}

// FromRect converts a gmath.Rect, which uses the same corner convention.
func FromRect(r gmath.Rect) Aabb {
	return New(r.Min, r.Max)
}

func (b Aabb) Rect() gmath.Rect {
	return gmath.Rect{Min: b.min, Max: b.max}
}

func (b Aabb) Min() gmath.Vec { return b.min }
func (b Aabb) Max() gmath.Vec { return b.max }

func (b Aabb) Width() float64  { return b.max.X - b.min.X }
func (b Aabb) Height() float64 { return b.max.Y - b.min.Y }
func (b Aabb) Area() float64   { return b.Width() * b.Height() }

func (b Aabb) Center() gmath.Vec {
	return gmath.Vec{X: (b.min.X + b.max.X) / 2, Y: (b.min.Y + b.max.Y) / 2}
}

// Join returns the least upper bound of both boxes.
func (b Aabb) Join(other Aabb) Aabb {
	return New(
		gmath.Vec{X: partial.Min(b.min.X, other.min.X), Y: partial.Min(b.min.Y, other.min.Y)},
		gmath.Vec{X: partial.Max(b.max.X, other.max.X), Y: partial.Max(b.max.Y, other.max.Y)},
	)
}

// Expand grows the box by margin on every side.
func (b Aabb) Expand(margin float64) Aabb {
	return New(
		gmath.Vec{X: b.min.X - margin, Y: b.min.Y - margin},
		gmath.Vec{X: b.max.X + margin, Y: b.max.Y + margin},
	)
}

// Contains reports whether other lies entirely inside b. Shared edges count.
func (b Aabb) Contains(other Aabb) bool {
	return other.min.X >= b.min.X &&
		other.max.X <= b.max.X &&
		other.min.Y >= b.min.Y &&
		other.max.Y <= b.max.Y
}

func (b Aabb) ContainsPoint(p gmath.Vec) bool {
	return p.X >= b.min.X && p.X <= b.max.X && p.Y >= b.min.Y && p.Y <= b.max.Y
}

// Intersects reports whether the interiors of the boxes overlap. Boxes that
// only touch along an edge or corner do not intersect.
func (b Aabb) Intersects(other Aabb) bool {
	return b.max.X > other.min.X &&
		b.min.X < other.max.X &&
		b.max.Y > other.min.Y &&
		b.min.Y < other.max.Y
}

// Overlaps is the closed version of Intersects: touching boxes overlap. Use
// this for rejecting candidates whose boundaries may meet, like segments.
func (b Aabb) Overlaps(other Aabb) bool {
	return b.max.X >= other.min.X &&
		b.min.X <= other.max.X &&
		b.max.Y >= other.min.Y &&
		b.min.Y <= other.max.Y
}

func (b Aabb) String() string {
	return fmt.Sprintf("Aabb{(%g, %g), (%g, %g)}", b.min.X, b.min.Y, b.max.X, b.max.Y)
}
