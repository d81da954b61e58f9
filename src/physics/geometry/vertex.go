package geometry

import "sort"

// HullVertices returns the sorted, distinct point indices used by faces.
func HullVertices(faces []Face) []int {
	seen := make(map[int]struct{}, len(faces))
	for _, f := range faces {
		seen[f.A] = struct{}{}
		seen[f.B] = struct{}{}
		seen[f.C] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
