package canvas

import (
	"fmt"
	"strings"

	"github.com/osuushi/genart/aabb"
	"github.com/osuushi/genart/geom"
)

type CommandKind int

const (
	MoveTo CommandKind = iota
	LineTo
	QuadTo
	CubicTo
	Close
)

// A single path command. Points holds the control points followed by the end
// point: none for Close, one for MoveTo and LineTo, two for QuadTo, and three
// for CubicTo.
type Command struct {
	Kind   CommandKind
	Points []geom.Point
}

var commandLetters = map[CommandKind]string{
	MoveTo:  "M",
	LineTo:  "L",
	QuadTo:  "Q",
	CubicTo: "C",
	Close:   "Z",
}

// A stroked, unfilled path.
type Path struct {
	Commands []Command
	// Any CSS color. Empty means black.
	Color string
}

func (p *Path) MoveTo(to geom.Point) *Path {
	return p.add(MoveTo, to)
}

func (p *Path) LineTo(to geom.Point) *Path {
	return p.add(LineTo, to)
}

func (p *Path) QuadTo(control, to geom.Point) *Path {
	return p.add(QuadTo, control, to)
}

func (p *Path) CubicTo(control1, control2, to geom.Point) *Path {
	return p.add(CubicTo, control1, control2, to)
}

func (p *Path) Close() *Path {
	return p.add(Close)
}

func (p *Path) add(kind CommandKind, points ...geom.Point) *Path {
	p.Commands = append(p.Commands, Command{Kind: kind, Points: points})
	return p
}

// Points returns every point the path references, control points included.
func (p Path) Points() []geom.Point {
	var points []geom.Point
	for _, command := range p.Commands {
		points = append(points, command.Points...)
	}
	return points
}

// Bounds of the path's points. Control points are included, so this may be
// larger than the drawn curve. Panics on an empty path.
func (p Path) Bounds() aabb.Aabb {
	return aabb.ForVertices(p.Points()...)
}

func (p Path) ColorOrDefault() string {
	if p.Color == "" {
		return "black"
	}
	return p.Color
}

// Data returns the path in SVG path data syntax.
func (p Path) Data() string {
	var builder strings.Builder
	for i, command := range p.Commands {
		if i > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(commandLetters[command.Kind])
		for _, point := range command.Points {
			fmt.Fprintf(&builder, " %g %g", point.X, point.Y)
		}
	}
	return builder.String()
}

// Closed polyline through the points.
func polygonPath(points []geom.Point) Path {
	path := polylinePath(points)
	path.Close()
	return path
}

func polylinePath(points []geom.Point) Path {
	var path Path
	for i, point := range points {
		if i == 0 {
			path.MoveTo(point)
		} else {
			path.LineTo(point)
		}
	}
	return path
}
