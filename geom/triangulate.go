package geom

import (
	"math"

	"github.com/pkg/errors"
)

// Triangulate splits a simple polygon without holes into n-2 triangles using
// only its vertices. The polygon may wind either way; the triangles are always
// counterclockwise.
func Triangulate(p Polygon) ([]Triangle, error) {
	if len(p.Points) < 3 {
		return nil, errors.Wrapf(ErrInvalidPolygon, "triangulate %d points", len(p.Points))
	}
	// Crossing edges can cancel out in the signed area, so check simplicity
	// first.
	if !p.IsSimple() {
		return nil, errors.Wrapf(ErrSelfIntersectingPolygon, "triangulate %v", p)
	}
	signedArea := SignedArea(p)
	if math.Abs(signedArea) <= Tolerance {
		return nil, errors.Wrapf(ErrDegenerateTriangle, "triangulate %v", p)
	}
	if signedArea < 0 {
		p = p.Reverse()
	}
	return clipEars(p)
}

func (p Polygon) Triangulate() ([]Triangle, error) {
	return Triangulate(p)
}

// Ear clipping over a doubly linked ring of vertex indices. The polygon must be
// simple and counterclockwise.
func clipEars(p Polygon) ([]Triangle, error) {
	n := len(p.Points)
	next := make([]int, n)
	prev := make([]int, n)
	for i := range p.Points {
		next[i] = p.Next(i)
		prev[i] = p.Prev(i)
	}

	isEar := func(i int) bool {
		a, b, c := p.Points[prev[i]], p.Points[i], p.Points[next[i]]
		// Strictly convex. Reflex and collinear vertices are never ear tips.
		if Area2(a, b, c) <= Tolerance {
			return false
		}
		ear := Triangle{a, b, c}
		// No other remaining vertex may lie in the ear, boundary included.
		for j := next[next[i]]; j != prev[i]; j = next[j] {
			if ear.ImproperlyContainsPoint(p.Points[j]) {
				return false
			}
		}
		return true
	}

	ears := make([]bool, n)
	for i := range p.Points {
		ears[i] = isEar(i)
	}

	triangles := make([]Triangle, 0, n-2)
	current := 0
	for remaining := n; remaining > 3; remaining-- {
		// Walk the ring once looking for an ear.
		tip := -1
		for i, steps := current, 0; steps < remaining; i, steps = next[i], steps+1 {
			if ears[i] {
				tip = i
				break
			}
		}
		if tip < 0 {
			return nil, errors.Wrapf(ErrSelfIntersectingPolygon, "no ear found with %d vertices remaining", remaining)
		}

		before, after := prev[tip], next[tip]
		triangles = append(triangles, Triangle{p.Points[before], p.Points[tip], p.Points[after]})
		next[before] = after
		prev[after] = before
		// Only the ear's neighbors can change status.
		ears[before] = isEar(before)
		ears[after] = isEar(after)
		current = after
	}

	last := Triangle{p.Points[prev[current]], p.Points[current], p.Points[next[current]]}
	if Area2(last.A, last.B, last.C) <= Tolerance {
		return nil, errors.Wrapf(ErrDegenerateTriangle, "final triangle %v", last)
	}
	return append(triangles, last), nil
}
