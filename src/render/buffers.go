// Package render turns hull snapshots into flat buffers a renderer can upload
// as they are.
package render

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"hullstep/src/physics/geometry"
)

type Vertex struct {
	Position r3.Vector `json:"position"`
	Normal   r3.Vector `json:"normal"`
}

type Line [2]r3.Vector

type Buffers struct {
	Points        []r3.Vector `json:"points"`         // every input point
	Triangles     []Vertex    `json:"triangles"`      // three vertices per face, flat shaded
	Lines         []Line      `json:"lines"`          // three outline segments per face
	NormalMarkers []Line      `json:"normal_markers"` // face centre to centre + unit normal
}

// NewBuffers expands m into per-corner vertex data. Shared edges are emitted
// once per face, as an immediate-mode line list would draw them.
func NewBuffers(m *geometry.Mesh) (*Buffers, error) {
	if m == nil {
		return nil, errors.WithStack(ErrNilMesh)
	}
	n := len(m.Points)
	for i, tri := range m.Triangles {
		for corner, idx := range tri {
			if idx < 0 || idx >= n {
				return nil, indexError(i, corner, idx, n)
			}
		}
	}

	b := &Buffers{
		Points:        make([]r3.Vector, n),
		Triangles:     make([]Vertex, 0, 3*m.Len()),
		Lines:         make([]Line, 0, 3*m.Len()),
		NormalMarkers: make([]Line, 0, m.Len()),
	}
	copy(b.Points, m.Points)

	for i := range m.Triangles {
		p0, p1, p2 := m.TriangleVertices(i)
		normal := m.Normal(i)
		b.Triangles = append(b.Triangles,
			Vertex{Position: p0, Normal: normal},
			Vertex{Position: p1, Normal: normal},
			Vertex{Position: p2, Normal: normal},
		)
		b.Lines = append(b.Lines, Line{p0, p1}, Line{p1, p2}, Line{p2, p0})

		center := m.Face(i).Center(m.Points)
		b.NormalMarkers = append(b.NormalMarkers, Line{center, center.Add(normal)})
	}
	return b, nil
}
