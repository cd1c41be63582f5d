package geom

import (
	"fmt"

	"github.com/osuushi/genart/aabb"
	"github.com/osuushi/genart/partial"
)

// A directed segment from A to B. Side tests treat it as the infinite line
// through A and B; everything else treats it as the bounded segment.
type Line struct {
	A, B Point
}

type RelativeDirection int

const (
	Left RelativeDirection = iota
	Collinear
	Right
)

func (d RelativeDirection) String() string {
	switch d {
	case Left:
		return "Left"
	case Collinear:
		return "Collinear"
	default:
		return "Right"
	}
}

func (l Line) String() string {
	return fmt.Sprintf("Line{(%g, %g) -> (%g, %g)}", l.A.X, l.A.Y, l.B.X, l.B.Y)
}

func (l Line) Vector() Point {
	return l.B.Sub(l.A)
}

func (l Line) Length() float64 {
	return l.A.DistanceTo(l.B)
}

// Lerp returns the point at parameter t along the segment: A at 0, B at 1.
func (l Line) Lerp(t float64) Point {
	return l.A.Add(l.Vector().Mulf(t))
}

func (l Line) Bounds() aabb.Aabb {
	return aabb.ForVertices(l.A, l.B)
}

func (l Line) Reverse() Line {
	return Line{l.B, l.A}
}

// Which side of the directed line through A and B the point is on.
func (l Line) RelativeDirectionOf(p Point) RelativeDirection {
	area := Area2(l.A, l.B, p)
	switch {
	case area > Tolerance:
		return Left
	case area < -Tolerance:
		return Right
	default:
		return Collinear
	}
}

func (l Line) IsLeft(p Point) bool {
	return l.RelativeDirectionOf(p) == Left
}

func (l Line) IsLeftOrCollinear(p Point) bool {
	return l.RelativeDirectionOf(p) != Right
}

func (l Line) IsCollinear(p Point) bool {
	return l.RelativeDirectionOf(p) == Collinear
}

func (l Line) IsRight(p Point) bool {
	return l.RelativeDirectionOf(p) == Right
}

func (l Line) IsRightOrCollinear(p Point) bool {
	return l.RelativeDirectionOf(p) != Left
}

// IsOn reports whether p lies on the segment, endpoints included.
func (l Line) IsOn(p Point) bool {
	return l.IsCollinear(p) && l.Bounds().Expand(Tolerance).ContainsPoint(p)
}

func (l Line) isDegenerate() bool {
	return PointsEqual(l.A, l.B)
}

// Intersects reports whether the segments properly cross: they meet at exactly
// one point which is interior to both. Touching at an endpoint or overlapping
// along a shared line doesn't count; use ImproperlyIntersects for that.
func (l Line) Intersects(other Line) bool {
	return l.Intersection(other).Kind == ProperIntersection
}

// ImproperlyIntersects reports whether the segments share any point at all,
// including touching at an endpoint and collinear overlap.
func (l Line) ImproperlyIntersects(other Line) bool {
	return l.Intersection(other).Kind != NoIntersection
}

type IntersectionKind int

const (
	// The segments are disjoint.
	NoIntersection IntersectionKind = iota
	// The segments cross at a single point interior to both.
	ProperIntersection
	// The segments touch at a single point which is an endpoint of at least one.
	ImproperIntersection
	// The segments are collinear and overlap along a segment of positive length.
	CollinearIntersection
)

func (k IntersectionKind) String() string {
	switch k {
	case NoIntersection:
		return "NoIntersection"
	case ProperIntersection:
		return "ProperIntersection"
	case ImproperIntersection:
		return "ImproperIntersection"
	default:
		return "CollinearIntersection"
	}
}

type LineIntersection struct {
	Kind IntersectionKind
	// Set for proper and improper intersections.
	Point Point
	// Set for collinear intersections. Directed the same way as the receiver of
	// Intersection.
	Overlap Line
}

// Intersection classifies how two segments meet.
func (l Line) Intersection(other Line) LineIntersection {
	if !l.Bounds().Expand(Tolerance).Overlaps(other.Bounds()) {
		return LineIntersection{Kind: NoIntersection}
	}

	switch {
	case l.isDegenerate():
		if other.IsOn(l.A) {
			return LineIntersection{Kind: ImproperIntersection, Point: l.A}
		}
		return LineIntersection{Kind: NoIntersection}
	case other.isDegenerate():
		if l.IsOn(other.A) {
			return LineIntersection{Kind: ImproperIntersection, Point: other.A}
		}
		return LineIntersection{Kind: NoIntersection}
	}

	lA := other.RelativeDirectionOf(l.A)
	lB := other.RelativeDirectionOf(l.B)
	otherA := l.RelativeDirectionOf(other.A)
	otherB := l.RelativeDirectionOf(other.B)

	// Orientation is judged against a fixed area, so a long segment can see a
	// short one as collinear when the reverse isn't true. Only treat the pair as
	// collinear when both agree.
	if lA == Collinear && lB == Collinear && otherA == Collinear && otherB == Collinear {
		return l.collinearIntersection(other)
	}

	if lA != Collinear && lB != Collinear && otherA != Collinear && otherB != Collinear {
		if lA == lB || otherA == otherB {
			return LineIntersection{Kind: NoIntersection}
		}
		// Solve l.A + t*(l.B - l.A) on the other line
		lv, ov := l.Vector(), other.Vector()
		t := Cross(other.A.Sub(l.A), ov) / Cross(lv, ov)
		return LineIntersection{Kind: ProperIntersection, Point: l.Lerp(t)}
	}

	// At least one endpoint is on the other segment's line. Since the segments
	// aren't collinear, that endpoint is the only candidate for contact.
	for _, candidate := range []struct {
		point   Point
		segment Line
		side    RelativeDirection
	}{
		{l.A, other, lA},
		{l.B, other, lB},
		{other.A, l, otherA},
		{other.B, l, otherB},
	} {
		if candidate.side == Collinear && candidate.segment.IsOn(candidate.point) {
			return LineIntersection{Kind: ImproperIntersection, Point: candidate.point}
		}
	}
	return LineIntersection{Kind: NoIntersection}
}

// Both segments lie on the same line. Project other onto l and clip to l's
// parameter range.
func (l Line) collinearIntersection(other Line) LineIntersection {
	lv := l.Vector()
	lengthSquared := Dot(lv, lv)
	param := func(p Point) float64 {
		return Dot(p.Sub(l.A), lv) / lengthSquared
	}
	tOtherA, tOtherB := param(other.A), param(other.B)

	low := partial.Max(0, partial.Min(tOtherA, tOtherB))
	high := partial.Min(1, partial.Max(tOtherA, tOtherB))

	// Recover the exact endpoint each parameter came from, so that overlap
	// endpoints are input points rather than interpolated ones.
	pointAt := func(t float64) Point {
		switch t {
		case 0:
			return l.A
		case 1:
			return l.B
		case tOtherA:
			return other.A
		default:
			return other.B
		}
	}

	length := (high - low) * l.Length()
	switch {
	case length < -Tolerance:
		return LineIntersection{Kind: NoIntersection}
	case length <= Tolerance:
		return LineIntersection{Kind: ImproperIntersection, Point: pointAt(partial.Max(0, partial.Min(1, low)))}
	default:
		return LineIntersection{Kind: CollinearIntersection, Overlap: Line{pointAt(low), pointAt(high)}}
	}
}
