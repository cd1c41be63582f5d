package main

import (
	"io"
	"math"
	"os"

	"github.com/osuushi/genart/aabb"
	"github.com/osuushi/genart/canvas"
	"github.com/osuushi/genart/geom"
	"github.com/osuushi/genart/internal/svgload"
	"github.com/pkg/errors"
)

// Longest side of the rendered document, in pixels.
const renderSize = 800

func triangulateFile(path string, w io.Writer, pngPath string) error {
	polygons, err := svgload.File(path)
	if err != nil {
		return err
	}
	c, err := canvasFor(polygons)
	if err != nil {
		return err
	}
	for i, polygon := range polygons {
		triangles, err := polygon.Triangulate()
		if err != nil {
			return errors.Wrapf(err, "polygon %d", i)
		}
		c.Draw(canvas.WithColor(canvas.Triangles(triangles), "gray"))
		c.Draw(canvas.Polygon{Polygon: polygon})
	}
	return render(c, w, pngPath)
}

func hullFile(path string, w io.Writer, pngPath string) error {
	polygons, err := svgload.File(path)
	if err != nil {
		return err
	}
	c, err := canvasFor(polygons)
	if err != nil {
		return err
	}
	var points []geom.Point
	for _, polygon := range polygons {
		points = append(points, polygon.Points...)
		c.Draw(canvas.WithColor(canvas.Polygon{Polygon: polygon}, "gray"))
	}
	hull, ok := geom.NewConvexPolygon(points)
	if !ok {
		return errors.New("a hull needs at least 3 points not all on one line")
	}
	c.Draw(canvas.WithColor(canvas.Polygon{Polygon: hull.Polygon()}, "red"))
	return render(c, w, pngPath)
}

// canvasFor makes a canvas framing every polygon with a small margin.
func canvasFor(polygons []geom.Polygon) (*canvas.Canvas, error) {
	var points []geom.Point
	for _, polygon := range polygons {
		points = append(points, polygon.Points...)
	}
	if len(points) == 0 {
		return nil, errors.New("no polygons found")
	}
	view := aabb.ForVertices(points...)
	size := max(view.Width(), view.Height())
	if size == 0 {
		return nil, errors.Wrap(geom.ErrDegenerateRegion, "polygons cover a single point")
	}
	return canvas.New(view.Expand(size / 20)), nil
}

func render(c *canvas.Canvas, w io.Writer, pngPath string) error {
	view := c.View()
	scale := renderSize / max(view.Width(), view.Height())
	if err := c.WriteSVG(w, canvas.Pixels(view.Width()*scale), canvas.Pixels(view.Height()*scale)); err != nil {
		return err
	}
	if pngPath == "" {
		return nil
	}
	f, err := os.Create(pngPath)
	if err != nil {
		return errors.WithStack(err)
	}
	// WritePNG derives the height from the width, rounding up.
	pixelWidth := renderSize
	if view.Height() > view.Width() {
		pixelWidth = int(math.Floor(view.Width() * scale))
	}
	if err := c.WritePNG(f, pixelWidth); err != nil {
		f.Close()
		return err
	}
	return errors.WithStack(f.Close())
}
