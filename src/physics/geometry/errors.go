package geometry

import "github.com/pkg/errors"

var (
	// ErrInsufficientPoints is returned when fewer than four points are given.
	ErrInsufficientPoints = errors.New("geometry: at least 4 points are required to build a hull")

	// ErrDegenerateInput is returned when every point lies within epsilon of
	// the plane through the first three, so no tetrahedron can be seeded.
	ErrDegenerateInput = errors.New("geometry: points are coplanar, no hull possible")

	// ErrReleased is returned by Reset once Release has dropped the points.
	ErrReleased = errors.New("geometry: hull computer released")
)
