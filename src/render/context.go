package render

import "github.com/golang/geo/r3"

// Target is implemented by whatever draws hull geometry: a window, an image
// writer or a recorder that forwards frames to a remote viewer.
type Target interface {
	DrawPoints(points []r3.Vector) error
	DrawTriangles(vertices []Vertex) error
	DrawLines(lines []Line) error
}

type Mode int

const (
	// ModeFilled draws shaded faces with their normal markers and outlines.
	ModeFilled Mode = iota
	// ModeWireframe draws outlines only.
	ModeWireframe
)

func (m Mode) String() string {
	switch m {
	case ModeFilled:
		return "filled"
	case ModeWireframe:
		return "wireframe"
	}
	return "unknown"
}

// Draw issues the draw calls for one frame: the point cloud, then the hull in
// the requested mode.
func Draw(t Target, b *Buffers, mode Mode) error {
	if err := t.DrawPoints(b.Points); err != nil {
		return drawError(err, "points")
	}
	if mode == ModeFilled {
		if err := t.DrawLines(b.NormalMarkers); err != nil {
			return drawError(err, "normal markers")
		}
		if err := t.DrawTriangles(b.Triangles); err != nil {
			return drawError(err, "triangles")
		}
	}
	if err := t.DrawLines(b.Lines); err != nil {
		return drawError(err, "wires")
	}
	return nil
}
