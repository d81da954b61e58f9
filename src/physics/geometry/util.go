package geometry

// IsPointInsideFaces reports whether point lies behind, or within margin in
// front of, the plane of every face. Distances are measured along unit
// normals. Zero-area faces are skipped.
func IsPointInsideFaces(points []Point, faces []Face, point Point, margin float64) bool {
	for _, f := range faces {
		n := f.GetNormal(points)
		length := n.Norm()
		if length == 0 {
			continue
		}
		dist := planeDistance(n, points[f.A], point)/length - margin
		if dist > 0 {
			return false
		}
	}
	return true
}

// AreVerticesBehindFace reports whether every listed point is behind, or
// within margin in front of, face.
func AreVerticesBehindFace(points []Point, face Face, vertices []int, margin float64) bool {
	n := face.GetNormal(points)
	length := n.Norm()
	if length == 0 {
		return true
	}
	for _, v := range vertices {
		dist := planeDistance(n, points[face.A], points[v])/length - margin
		if dist > 0 {
			return false
		}
	}
	return true
}
