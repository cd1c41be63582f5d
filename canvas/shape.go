package canvas

import (
	"github.com/osuushi/genart/aabb"
	"github.com/osuushi/genart/geom"
)

// Anything that can be drawn on a canvas.
type Shape interface {
	Paths() []Path
	aabb.Bounded
}

type Polygon struct {
	geom.Polygon
}

func (p Polygon) Paths() []Path {
	return []Path{polygonPath(p.Points)}
}

type Triangle struct {
	geom.Triangle
}

func (t Triangle) Paths() []Path {
	return []Path{polygonPath(t.Vertices())}
}

// Triangles draws each triangle of a triangulation.
type Triangles []geom.Triangle

func (ts Triangles) Paths() []Path {
	paths := make([]Path, len(ts))
	for i, t := range ts {
		paths[i] = polygonPath(t.Vertices())
	}
	return paths
}

func (ts Triangles) Bounds() aabb.Aabb {
	var points []geom.Point
	for _, t := range ts {
		points = append(points, t.Vertices()...)
	}
	return aabb.ForVertices(points...)
}

type Line struct {
	geom.Line
}

func (l Line) Paths() []Path {
	return []Path{polylinePath([]geom.Point{l.A, l.B})}
}

// An open path through a sequence of points.
type Polyline []geom.Point

func (pl Polyline) Paths() []Path {
	return []Path{polylinePath(pl)}
}

func (pl Polyline) Bounds() aabb.Aabb {
	return aabb.ForVertices(pl...)
}

// A raw path is a shape too.
func (p Path) Paths() []Path {
	return []Path{p}
}

// Colored forces every path of a shape to the given color.
type Colored struct {
	Shape
	Color string
}

func WithColor(shape Shape, color string) Colored {
	return Colored{Shape: shape, Color: color}
}

func (c Colored) Paths() []Path {
	paths := c.Shape.Paths()
	for i := range paths {
		paths[i].Color = c.Color
	}
	return paths
}
