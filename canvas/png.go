package canvas

import (
	"io"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

// Named colors which gg can't parse on its own. Anything else must be hex.
var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"gray":   "#808080",
	"grey":   "#808080",
	"orange": "#ffa500",
	"purple": "#800080",
}

// WritePNG rasterizes the canvas onto a white background, pixelWidth wide and
// scaled to keep the view's aspect ratio. This is for previews: only hex and a
// few named colors are understood, and anything else draws black.
func (c *Canvas) WritePNG(w io.Writer, pixelWidth int) error {
	view := c.view
	if view.Width() <= 0 || view.Height() <= 0 {
		return errors.Errorf("cannot rasterize empty view %v", view)
	}
	scale := float64(pixelWidth) / view.Width()
	pixelHeight := int(math.Ceil(view.Height() * scale))

	dc := gg.NewContext(pixelWidth, pixelHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.Scale(scale, scale)
	dc.Translate(-view.Min().X, -view.Min().Y)
	dc.SetLineWidth(c.StrokeWidth * scale)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	for _, path := range c.paths {
		drawPath(dc, path)
		dc.SetHexColor(hexColor(path.ColorOrDefault()))
		dc.Stroke()
	}
	return errors.Wrap(dc.EncodePNG(w), "encode png")
}

func drawPath(dc *gg.Context, path Path) {
	dc.NewSubPath()
	for _, command := range path.Commands {
		p := command.Points
		switch command.Kind {
		case MoveTo:
			dc.MoveTo(p[0].X, p[0].Y)
		case LineTo:
			dc.LineTo(p[0].X, p[0].Y)
		case QuadTo:
			dc.QuadraticTo(p[0].X, p[0].Y, p[1].X, p[1].Y)
		case CubicTo:
			dc.CubicTo(p[0].X, p[0].Y, p[1].X, p[1].Y, p[2].X, p[2].Y)
		case Close:
			dc.ClosePath()
		}
	}
}

func hexColor(color string) string {
	color = strings.ToLower(strings.TrimSpace(color))
	if hex, ok := namedColors[color]; ok {
		return hex
	}
	if strings.HasPrefix(color, "#") {
		return color
	}
	return namedColors["black"]
}
