package server

import (
	"github.com/golang/geo/r3"

	"hullstep/src/render"
)

// frame is a render.Target that records draw calls for a remote viewer to
// replay.
type frame struct {
	Mode  string     `json:"mode"`
	Step  int        `json:"step"`
	Calls []drawCall `json:"calls"`
}

type drawCall struct {
	Kind      string          `json:"kind"`
	Points    []r3.Vector     `json:"points,omitempty"`
	Triangles []render.Vertex `json:"triangles,omitempty"`
	Lines     []render.Line   `json:"lines,omitempty"`
}

func (f *frame) DrawPoints(points []r3.Vector) error {
	f.Calls = append(f.Calls, drawCall{Kind: "points", Points: points})
	return nil
}

func (f *frame) DrawTriangles(vertices []render.Vertex) error {
	f.Calls = append(f.Calls, drawCall{Kind: "triangles", Triangles: vertices})
	return nil
}

func (f *frame) DrawLines(lines []render.Line) error {
	f.Calls = append(f.Calls, drawCall{Kind: "lines", Lines: lines})
	return nil
}
