package geometry

// Mesh is an immutable snapshot of a hull: its own copy of the point buffer
// and the triangles as index triples into it.
type Mesh struct {
	Points    []Point  `json:"points"`    // the full point buffer, including interior points
	Triangles [][3]int `json:"triangles"` // outward wound index triples into Points
	Step      int      `json:"step"`      // points admitted after the seed
}

func newMesh(points []Point, faces []Face, step int) *Mesh {
	m := &Mesh{
		Points:    clonePoints(points),
		Triangles: make([][3]int, len(faces)),
		Step:      step,
	}
	for i, f := range faces {
		m.Triangles[i] = f.Indices()
	}
	return m
}

func (m *Mesh) Len() int {
	return len(m.Triangles)
}

func (m *Mesh) Face(i int) Face {
	t := m.Triangles[i]
	return NewFace(t[0], t[1], t[2])
}

func (m *Mesh) Faces() []Face {
	faces := make([]Face, len(m.Triangles))
	for i := range m.Triangles {
		faces[i] = m.Face(i)
	}
	return faces
}

func (m *Mesh) TriangleVertices(i int) (Point, Point, Point) {
	t := m.Triangles[i]
	return m.Points[t[0]], m.Points[t[1]], m.Points[t[2]]
}

// Normal is the unit outward normal of triangle i.
func (m *Mesh) Normal(i int) Point {
	return m.Face(i).UnitNormal(m.Points)
}

// VertexIndices returns the sorted indices of the points on the hull.
func (m *Mesh) VertexIndices() []int {
	return HullVertices(m.Faces())
}

// Centroid is the mean of the hull's vertices. It lies strictly inside any
// hull with non-zero volume.
func (m *Mesh) Centroid() Point {
	idx := m.VertexIndices()
	pts := make([]Point, len(idx))
	for i, v := range idx {
		pts[i] = m.Points[v]
	}
	return centroid(pts)
}

// IsClosed reports whether the triangles form a watertight, consistently
// wound surface: every directed edge appears once and is matched by exactly
// one edge running the other way.
func (m *Mesh) IsClosed() bool {
	if len(m.Triangles) == 0 {
		return false
	}
	seen := make(map[Edge]int, 3*len(m.Triangles))
	for i := range m.Triangles {
		for _, e := range m.Face(i).Edges() {
			seen[e]++
		}
	}
	for e, n := range seen {
		if n != 1 || seen[e.Reverse()] != 1 {
			return false
		}
	}
	return true
}

// Contains reports whether p is no further than margin outside any face.
func (m *Mesh) Contains(p Point, margin float64) bool {
	return IsPointInsideFaces(m.Points, m.Faces(), p, margin)
}

// IsConvex reports whether every point of the buffer, hull vertex or not,
// lies behind or within margin of every face.
func (m *Mesh) IsConvex(margin float64) bool {
	all := make([]int, len(m.Points))
	for i := range all {
		all[i] = i
	}
	for i := range m.Triangles {
		if !AreVerticesBehindFace(m.Points, m.Face(i), all, margin) {
			return false
		}
	}
	return true
}
