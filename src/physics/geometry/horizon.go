package geometry

// Horizon collects the boundary of the region visible from one point. It is
// scratch state for a single insertion.
type Horizon struct {
	edges []Edge
}

func (h *Horizon) Len() int {
	return len(h.edges)
}

func (h *Horizon) Edges() []Edge {
	return h.edges
}

func (h *Horizon) index(e Edge) int {
	for i, o := range h.edges {
		if EdgesEqual(o, e) {
			return i
		}
	}
	return -1
}

func (h *Horizon) Contains(e Edge) bool {
	return h.index(e) >= 0
}

// Toggle inserts e, unless an equal edge is already present, in which case
// that edge is removed instead: it is shared by two visible faces and lies
// inside the visible region.
func (h *Horizon) Toggle(e Edge) {
	if i := h.index(e); i >= 0 {
		copy(h.edges[i:], h.edges[i+1:])
		h.edges = h.edges[:len(h.edges)-1]
		return
	}
	h.edges = append(h.edges, e)
}

func (h *Horizon) Reset() {
	h.edges = h.edges[:0]
}
