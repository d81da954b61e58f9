package geometry

// Edge is a directed pair of point indices. Equality between edges ignores
// direction, but the stored direction is the traversal order inherited from
// the face the edge came from.
type Edge struct {
	From, To int
}

func (e Edge) Reverse() Edge {
	return Edge{From: e.To, To: e.From}
}

func (e Edge) Equals(o Edge) bool {
	return EdgesEqual(e, o)
}

// EdgesEqual reports whether a and b join the same two points.
func EdgesEqual(a, b Edge) bool {
	return (a.From == b.From && a.To == b.To) || (a.From == b.To && a.To == b.From)
}
