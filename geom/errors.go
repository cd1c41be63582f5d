package geom

import "github.com/pkg/errors"

// Errors returned by this package are wrapped with context. Match them with
// errors.Is.
var (
	ErrInvalidVertexCount      = errors.New("polygon needs at least 3 vertices")
	ErrDegenerateRegion        = errors.New("region has zero width or height")
	ErrInvalidPolygon          = errors.New("polygon has fewer than 3 vertices")
	ErrSelfIntersectingPolygon = errors.New("polygon is not simple")
	ErrDegenerateTriangle      = errors.New("triangle has zero area")
	ErrGenerationFailed        = errors.New("could not generate a simple polygon")
)
