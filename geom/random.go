package geom

import (
	"math/rand/v2"

	"github.com/osuushi/genart/aabb"
	"github.com/pkg/errors"
)

// Numerical degeneracies (collinear samples, duplicate points) are resolved by
// resampling. With continuous coordinates they are vanishingly rare.
const maxGenerationAttempts = 32

// Polygons are built here and then scaled onto the requested region, so that
// Tolerance is measured against a region of fixed size.
var generationRegion = aabb.New(Point{X: 0, Y: 0}, Point{X: 1, Y: 1})

const maxPointAttempts = 10

// RandomPolygon generates a simple, counterclockwise polygon with n vertices
// distributed uniformly within region.
//
// The polygon is built by space partitioning. Two random points split the rest
// into the two sides of the line through them. Each side is then connected
// into a chain by recursively splitting it with a line through one of its
// points and a random point on the chain's base. Every chain stays inside its
// own convex cell, so no two edges can cross. Unlike sorting points by angle,
// this can produce any simple polygon, not just star-shaped ones.
func RandomPolygon(rng *rand.Rand, region aabb.Aabb, n int) (Polygon, error) {
	if n < 3 {
		return Polygon{}, errors.Wrapf(ErrInvalidVertexCount, "random polygon with %d vertices", n)
	}
	if region.Width() <= 0 || region.Height() <= 0 {
		return Polygon{}, errors.Wrapf(ErrDegenerateRegion, "random polygon in %v", region)
	}

	var lastErr error
	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		polygon, err := tryRandomPolygon(rng, generationRegion, n)
		if err == nil {
			return polygon.Transform(fitTo(region)), nil
		}
		Logger().Debug("geom: retrying random polygon", "attempt", attempt, "reason", err)
		lastErr = err
	}
	return Polygon{}, errors.Wrapf(ErrGenerationFailed, "%d attempts, last: %v", maxGenerationAttempts, lastErr)
}

func tryRandomPolygon(rng *rand.Rand, region aabb.Aabb, n int) (result Polygon, err error) {
	defer func() {
		if recoveredErr := handleDegeneratePanicRecover(recover()); recoveredErr != nil {
			result = Polygon{}
			err = recoveredErr
		}
	}()

	points := randomPoints(rng, region, n)
	i := rng.IntN(n)
	j := rng.IntN(n - 1)
	if j >= i {
		j++
	}
	a, b := points[i], points[j]

	base := Line{a, b}
	var left, right []Point
	for k, point := range points {
		if k == i || k == j {
			continue
		}
		switch base.RelativeDirectionOf(point) {
		case Left:
			left = append(left, point)
		case Right:
			right = append(right, point)
		default:
			fatalf("point %v is collinear with %v", point, base)
		}
	}

	// Going a to b along the right side and back along the left side winds
	// counterclockwise.
	vertices := make([]Point, 0, n)
	vertices = append(vertices, a)
	vertices = append(vertices, chain(rng, a, b, right)...)
	vertices = append(vertices, b)
	vertices = append(vertices, chain(rng, b, a, left)...)
	polygon := Polygon{Points: vertices}.Counterclockwise()

	if Area(polygon) <= Tolerance {
		fatalf("generated polygon has zero area")
	}
	if !polygon.IsSimple() {
		fatalf("generated polygon is not simple: %v", polygon)
	}
	return polygon, nil
}

// fitTo maps the unit square onto region. Both axes scale by a positive factor,
// so winding and simplicity carry over.
func fitTo(region aabb.Aabb) func(Point) Point {
	min := region.Min()
	return func(p Point) Point {
		return Point{
			X: min.X + p.X*region.Width(),
			Y: min.Y + p.Y*region.Height(),
		}
	}
}

// chain orders points into a path from start to end (exclusive of both) which,
// together with the segment from start to end, bounds a simple polygon. All of
// points must lie in a convex cell which has start and end on its boundary.
func chain(rng *rand.Rand, start, end Point, points []Point) []Point {
	if len(points) <= 1 {
		return points
	}

	pivotIndex := rng.IntN(len(points))
	pivot := points[pivotIndex]
	// Keep the split point away from the base's endpoints, so that start and end
	// are clearly separated by the splitting line.
	split := Line{start, end}.Lerp(0.1 + 0.8*rng.Float64())
	splitter := Line{pivot, split}

	startSide := splitter.RelativeDirectionOf(start)
	if startSide == Collinear || splitter.RelativeDirectionOf(end) == startSide {
		fatalf("split line %v does not separate %v and %v", splitter, start, end)
	}

	var nearStart, nearEnd []Point
	for k, point := range points {
		if k == pivotIndex {
			continue
		}
		switch splitter.RelativeDirectionOf(point) {
		case startSide:
			nearStart = append(nearStart, point)
		case Collinear:
			fatalf("point %v is collinear with %v", point, splitter)
		default:
			nearEnd = append(nearEnd, point)
		}
	}

	result := make([]Point, 0, len(points))
	result = append(result, chain(rng, start, pivot, nearStart)...)
	result = append(result, pivot)
	result = append(result, chain(rng, pivot, end, nearEnd)...)
	return result
}

// RandomPoints returns n distinct points uniformly distributed in region.
func RandomPoints(rng *rand.Rand, region aabb.Aabb, n int) (points []Point, err error) {
	if region.Width() <= 0 || region.Height() <= 0 {
		return nil, errors.Wrapf(ErrDegenerateRegion, "random points in %v", region)
	}
	defer func() {
		if recoveredErr := handleDegeneratePanicRecover(recover()); recoveredErr != nil {
			points = nil
			err = errors.Wrap(ErrGenerationFailed, recoveredErr.Error())
		}
	}()
	return randomPoints(rng, region, n), nil
}

func randomPoints(rng *rand.Rand, region aabb.Aabb, n int) []Point {
	seen := make(map[Point]struct{}, n)
	points := make([]Point, 0, n)
	min := region.Min()
	for len(points) < n {
		for attempt := 0; ; attempt++ {
			if attempt == maxPointAttempts {
				fatalf("failed to generate a new unique point in %v", region)
			}
			point := Point{
				X: min.X + rng.Float64()*region.Width(),
				Y: min.Y + rng.Float64()*region.Height(),
			}
			if _, ok := seen[point]; !ok {
				seen[point] = struct{}{}
				points = append(points, point)
				break
			}
		}
	}
	return points
}
