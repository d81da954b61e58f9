package geometry

// FaceSet is the ordered working set of hull faces. Faces live in a plain
// slice; removal keeps the relative order of the survivors.
type FaceSet struct {
	faces []Face
}

func NewFaceSet(capacity int) *FaceSet {
	return &FaceSet{faces: make([]Face, 0, capacity)}
}

func (s *FaceSet) Len() int {
	return len(s.faces)
}

func (s *FaceSet) At(i int) Face {
	return s.faces[i]
}

func (s *FaceSet) Append(f Face) {
	s.faces = append(s.faces, f)
}

// Remove drops the face at index i.
func (s *FaceSet) Remove(i int) {
	copy(s.faces[i:], s.faces[i+1:])
	s.faces = s.faces[:len(s.faces)-1]
}

// Index returns the position of f, or -1. Faces match on exact winding.
func (s *FaceSet) Index(f Face) int {
	for i, g := range s.faces {
		if g == f {
			return i
		}
	}
	return -1
}

func (s *FaceSet) Contains(f Face) bool {
	return s.Index(f) >= 0
}

// RemoveFunc walks the set once in order, calling visit on every face. Faces
// for which visit returns true are removed. The survivors are compacted in
// place.
func (s *FaceSet) RemoveFunc(visit func(Face) bool) int {
	kept := s.faces[:0]
	removed := 0
	for _, f := range s.faces {
		if visit(f) {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	s.faces = kept
	return removed
}

// Faces returns a copy of the current faces.
func (s *FaceSet) Faces() []Face {
	out := make([]Face, len(s.faces))
	copy(out, s.faces)
	return out
}

func (s *FaceSet) Clear() {
	s.faces = s.faces[:0]
}
