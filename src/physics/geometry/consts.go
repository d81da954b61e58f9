package geometry

const (
	// DefaultEpsilon is the tolerance used by the seed step to tell a fourth
	// point apart from the plane of the first three.
	DefaultEpsilon = 1e-6

	// FinalStep asks the driver for the completed hull.
	FinalStep = -1

	// seedPoints is the number of points consumed by the initial tetrahedron.
	seedPoints = 4
)
