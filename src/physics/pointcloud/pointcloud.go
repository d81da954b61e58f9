// Package pointcloud generates reproducible point sets for hull construction.
package pointcloud

import (
	"math/rand"

	"github.com/golang/geo/r3"
)

const (
	DefaultExtent = 5.0

	// resolution is the number of grid steps on each side of zero.
	resolution = 100
)

type Options struct {
	Extent float64
}

type Option func(*Options)

// WithExtent sets the half-width of the cube the points are drawn from.
func WithExtent(extent float64) Option {
	if extent <= 0 {
		panic("WithExtent: extent must be positive")
	}
	return func(o *Options) {
		o.Extent = extent
	}
}

// Random returns count points drawn uniformly from a grid of 201 values per
// axis spanning [-extent, extent]. The same seed and count always produce the
// same points. With an integral extent that is a multiple of 100 every
// coordinate is an exact integer.
func Random(seed int64, count int, opts ...Option) []r3.Vector {
	o := Options{Extent: DefaultExtent}
	for _, set := range opts {
		set(&o)
	}
	if count <= 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	coord := func() float64 {
		v := rng.Intn(2*resolution+1) - resolution
		return float64(v) * o.Extent / resolution
	}

	points := make([]r3.Vector, count)
	for i := range points {
		points[i] = r3.Vector{X: coord(), Y: coord(), Z: coord()}
	}
	return points
}
