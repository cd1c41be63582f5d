package canvas

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo/float"
	"github.com/pkg/errors"
)

// A physical length for the rendered document, so that plotters draw at a
// known size.
type Length struct {
	Value float64
	Unit  string
}

func Inches(value float64) Length {
	return Length{value, "in"}
}

func Millimeters(value float64) Length {
	return Length{value, "mm"}
}

func Pixels(value float64) Length {
	return Length{value, "px"}
}

func (l Length) String() string {
	return fmt.Sprintf("%g%s", l.Value, l.Unit)
}

// WriteSVG renders every path, stroked and unfilled, into an SVG document of
// the given physical size whose viewBox is the canvas's view.
func (c *Canvas) WriteSVG(w io.Writer, width, height Length) error {
	if width.Unit != height.Unit {
		return errors.Errorf("width and height units differ: %s and %s", width, height)
	}
	errWriter := &errorWriter{w: w}
	doc := svg.New(errWriter)
	view := c.view
	doc.StartviewUnit(width.Value, height.Value, width.Unit, view.Min().X, view.Min().Y, view.Width(), view.Height())
	doc.Gstyle(fmt.Sprintf("fill:none;stroke-width:%g;stroke-linecap:round;stroke-linejoin:round", c.StrokeWidth))
	for _, path := range c.paths {
		if len(path.Commands) == 0 {
			continue
		}
		doc.Path(path.Data(), "stroke:"+path.ColorOrDefault())
	}
	doc.Gend()
	doc.End()
	return errors.Wrap(errWriter.err, "write svg")
}

// svgo ignores write errors, so remember the first one.
type errorWriter struct {
	w   io.Writer
	err error
}

func (e *errorWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
