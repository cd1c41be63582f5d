// A canvas collects stroked paths in world coordinates and renders them to SVG
// for plotting, or to PNG for previews.
package canvas

import (
	"github.com/osuushi/genart/aabb"
	"github.com/osuushi/genart/geom"
)

type Canvas struct {
	view        aabb.Aabb
	StrokeWidth float64
	paths       []Path
	// Bounds of everything drawn through DrawUnlessOverlapping.
	occupied aabb.Tree[int]
}

// New creates an empty canvas showing view. The stroke width defaults to a
// 500th of the view's width.
func New(view aabb.Aabb) *Canvas {
	return &Canvas{
		view:        view,
		StrokeWidth: view.Width() / 500,
	}
}

func (c *Canvas) View() aabb.Aabb {
	return c.view
}

func (c *Canvas) SetView(view aabb.Aabb) {
	c.view = view
}

func (c *Canvas) Paths() []Path {
	return c.paths
}

func (c *Canvas) Draw(shape Shape) {
	c.paths = append(c.paths, shape.Paths()...)
}

// DrawUnlessOverlapping draws the shape only if its bounding box doesn't
// intersect the bounding box of anything previously drawn with this method.
// It reports whether the shape was drawn.
func (c *Canvas) DrawUnlessOverlapping(shape Shape) bool {
	bounds := shape.Bounds()
	if c.occupied.AnyOverlap(bounds) {
		return false
	}
	c.occupied.Insert(bounds, len(c.paths))
	c.Draw(shape)
	return true
}

// FitViewToPaths sets the view to the bounds of every path point, grown by
// margin on each side. Does nothing if nothing was drawn.
func (c *Canvas) FitViewToPaths(margin float64) {
	var points []geom.Point
	for _, path := range c.paths {
		points = append(points, path.Points()...)
	}
	if len(points) == 0 {
		return
	}
	c.view = aabb.ForVertices(points...).Expand(margin)
}
