// Reads polygons out of SVG files. This is not a full (or even correct) SVG
// reader: it finds every <polygon> element and parses its points attribute,
// ignoring transforms, styles, and every other element.
package svgload

import (
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/JoshVarga/svgparser"
	"github.com/osuushi/genart/geom"
	"github.com/pkg/errors"
)

// Polygons parses every <polygon> in the document, in document order.
func Polygons(r io.Reader) ([]geom.Polygon, error) {
	root, err := svgparser.Parse(r, true)
	if err != nil {
		return nil, errors.Wrap(err, "parse svg")
	}

	elements := root.FindAll("polygon")
	polygons := make([]geom.Polygon, 0, len(elements))
	for i, element := range elements {
		points, err := ParsePoints(element.Attributes["points"])
		if err != nil {
			return nil, errors.Wrapf(err, "polygon %d", i)
		}
		polygons = append(polygons, geom.Polygon{Points: points})
	}
	return polygons, nil
}

// File reads the polygons of the SVG file at path.
func File(path string) ([]geom.Polygon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	polygons, err := Polygons(f)
	return polygons, errors.Wrap(err, path)
}

// Polygon reads the only polygon of the SVG file at path.
func Polygon(path string) (geom.Polygon, error) {
	polygons, err := File(path)
	if err != nil {
		return geom.Polygon{}, err
	}
	if len(polygons) != 1 {
		return geom.Polygon{}, errors.Errorf("%s: expected 1 polygon, found %d", path, len(polygons))
	}
	return polygons[0], nil
}

// ParsePoints parses an SVG points list. Coordinates may be separated by any
// mix of commas and whitespace.
func ParsePoints(s string) ([]geom.Point, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields)%2 != 0 {
		return nil, errors.Errorf("odd number of coordinates in %q", s)
	}

	points := make([]geom.Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid x value %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid y value %q", fields[i+1])
		}
		points = append(points, geom.Point{X: x, Y: y})
	}
	return points, nil
}
