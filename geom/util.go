package geom

import (
	"math"
	"slices"

	"github.com/osuushi/genart/aabb"
)

// Every orientation test in this package (line sides, hull turns, ear
// convexity, simplicity checks) treats a doubled triangle area within this of
// zero as collinear, so that all of them classify a configuration the same way.
const Tolerance = 1e-9

func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

func PointsEqual(a, b Point) bool {
	return Equal(a.X, b.X) && Equal(a.Y, b.Y)
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

// Z component of the 3D cross product of a and b.
func Cross(a, b Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

func Dot(a, b Point) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Twice the signed area of the triangle abc. Positive when abc turns left
// (counterclockwise).
func Area2(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

// Shoelace formula. Positive for counterclockwise rings.
func SignedArea(r Ring) float64 {
	vertices := r.Vertices()
	var sum float64
	for i, p := range vertices {
		q := vertices[CircularIndex(i+1, len(vertices))]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func Area(r Ring) float64 {
	return math.Abs(SignedArea(r))
}

func IsCCW(r Ring) bool {
	return SignedArea(r) > 0
}

func IsCW(r Ring) bool {
	return SignedArea(r) < 0
}

func Bounds(r Ring) aabb.Aabb {
	return aabb.ForVertices(r.Vertices()...)
}

// Mean of the points. Panics on an empty slice.
func Center(points []Point) Point {
	if len(points) == 0 {
		panic("geom: center of no points")
	}
	var sum Point
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mulf(1 / float64(len(points)))
}

// SortAround returns the points ordered counterclockwise around pivot, starting
// from 12 o'clock (the positive Y axis). Points at the same angle are ordered
// by distance from the pivot.
func SortAround(pivot Point, points []Point) []Point {
	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b Point) int {
		da, db := a.Sub(pivot), b.Sub(pivot)
		angleA, angleB := angleFromUp(da), angleFromUp(db)
		if angleA != angleB {
			if angleA < angleB {
				return -1
			}
			return 1
		}
		la, lb := Dot(da, da), Dot(db, db)
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// angleFromUp is the counterclockwise angle from the positive Y axis to v, in
// [0, 2π).
func angleFromUp(v Point) float64 {
	angle := math.Atan2(-v.X, v.Y)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// Lexicographic order: by X, then by Y.
func compareLexicographic(a, b Point) int {
	switch {
	case a.X < b.X:
		return -1
	case a.X > b.X:
		return 1
	case a.Y < b.Y:
		return -1
	case a.Y > b.Y:
		return 1
	default:
		return 0
	}
}
