// Two dimensional geometry for generative art: random simple polygons,
// triangulation, convex hulls, and segment predicates.
//
// Points are gmath vectors. All operations are pure: they never modify their
// inputs, and the only randomness comes from an explicitly passed *rand.Rand.
package geom

import (
	"fmt"
	"strings"

	"github.com/quasilyte/gmath"
)

type Point = gmath.Vec

// A closed ring of points. The edge from the last point back to the first is
// implicit.
type Polygon struct {
	Points []Point
}

type Triangle struct {
	A, B, C Point
}

// Anything that is a closed ring of vertices, for the functions that only care
// about the vertices.
type Ring interface {
	Vertices() []Point
}

func (p Polygon) Vertices() []Point {
	return p.Points
}

func (t Triangle) Vertices() []Point {
	return []Point{t.A, t.B, t.C}
}

func (p Polygon) String() string {
	var builder strings.Builder
	builder.WriteString("Polygon{")
	for i, point := range p.Points {
		if i > 0 {
			builder.WriteString(", ")
		}
		fmt.Fprintf(&builder, "(%g, %g)", point.X, point.Y)
	}
	builder.WriteString("}")
	return builder.String()
}

func (t Triangle) String() string {
	return fmt.Sprintf("Triangle{(%g, %g), (%g, %g), (%g, %g)}", t.A.X, t.A.Y, t.B.X, t.B.Y, t.C.X, t.C.Y)
}
