package geometry

import "github.com/golang/geo/r3"

// Point is a position in the hull's point buffer.
type Point = r3.Vector

func clonePoints(points []Point) []Point {
	out := make([]Point, len(points))
	copy(out, points)
	return out
}

// planeDistance is the unnormalized signed distance of p from the plane
// through origin with the given normal.
func planeDistance(normal, origin, p Point) float64 {
	return normal.Dot(p.Sub(origin))
}

func centroid(points []Point) Point {
	var c Point
	if len(points) == 0 {
		return c
	}
	for _, p := range points {
		c = c.Add(p)
	}
	return c.Mul(1 / float64(len(points)))
}
