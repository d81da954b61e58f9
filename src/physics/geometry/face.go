package geometry

import "fmt"

// Face is a triangle of point indices. The winding A, B, C determines the
// outward normal (pB - pA) x (pC - pA).
type Face struct {
	A, B, C int
}

func NewFace(a, b, c int) Face {
	return Face{A: a, B: b, C: c}
}

func (f Face) Indices() [3]int {
	return [3]int{f.A, f.B, f.C}
}

// Edges returns the three boundary edges in winding order.
func (f Face) Edges() [3]Edge {
	return [3]Edge{
		{From: f.A, To: f.B},
		{From: f.B, To: f.C},
		{From: f.C, To: f.A},
	}
}

func (f Face) HasVertex(i int) bool {
	return f.A == i || f.B == i || f.C == i
}

func (f Face) String() string {
	return fmt.Sprintf("(%d %d %d)", f.A, f.B, f.C)
}

// GetNormal is the unnormalized face normal. Only its direction and whether
// it is zero matter to the builder.
func (f Face) GetNormal(points []Point) Point {
	a := points[f.A]
	return points[f.B].Sub(a).Cross(points[f.C].Sub(a))
}

// UnitNormal is GetNormal scaled to unit length, for shading.
func (f Face) UnitNormal(points []Point) Point {
	return f.GetNormal(points).Normalize()
}

func (f Face) Center(points []Point) Point {
	return points[f.A].Add(points[f.B]).Add(points[f.C]).Mul(1.0 / 3.0)
}

// FaceNormal is the unnormalized normal of face.
func FaceNormal(face Face, points []Point) Point {
	return face.GetNormal(points)
}

// SignedDistance returns dot(normal, p - v0) for the face's plane. It is not
// scaled by the normal's length.
func SignedDistance(face Face, points []Point, p Point) float64 {
	return planeDistance(face.GetNormal(points), points[face.A], p)
}

// CanSee reports whether p lies on or in front of the face's plane.
// Coplanar points count as seeing the face.
func CanSee(face Face, points []Point, p Point) bool {
	return SignedDistance(face, points, p) >= 0
}
