package geometry

import (
	"context"
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
	"github.com/stretchr/testify/require"

	"hullstep/src/physics/pointcloud"
)

// gridCloud returns random points with integer coordinates in [-100, 100],
// for which every predicate the builder evaluates is exact.
func gridCloud(seed int64, count int) []Point {
	return pointcloud.Random(seed, count, pointcloud.WithExtent(100))
}

// sortedTriples canonicalizes a triangle list so hulls can be compared up to
// face order. Each triple is rotated, never mirrored, so winding survives.
func sortedTriples(tris [][3]int) [][3]int {
	out := make([][3]int, len(tris))
	for i, t := range tris {
		for t[0] > t[1] || t[0] > t[2] {
			t = [3]int{t[1], t[2], t[0]}
		}
		out[i] = t
	}
	sort.Slice(out, func(a, b int) bool {
		for k := 0; k < 3; k++ {
			if out[a][k] != out[b][k] {
				return out[a][k] < out[b][k]
			}
		}
		return false
	})
	return out
}

// requireOutwardClosed checks the invariants every observable hull state
// keeps: watertight, and every face wound away from the interior.
func requireOutwardClosed(t *testing.T, m *Mesh) {
	t.Helper()
	require.NotZero(t, m.Len())
	require.True(t, m.IsClosed(), "hull is not watertight: %v", m.Triangles)

	c := m.Centroid()
	for i := range m.Triangles {
		f := m.Face(i)
		outward := m.Normal(i).Dot(f.Center(m.Points).Sub(c))
		require.Greater(t, outward, 0.0, "face %s points inward", f)
	}
}

// requireValidHull additionally checks that no input point is outside, which
// only holds once every point has been admitted.
func requireValidHull(t *testing.T, m *Mesh) {
	t.Helper()
	requireOutwardClosed(t, m)
	require.True(t, m.IsConvex(1e-9), "a point lies outside the hull")
}

func onBoundary(m *Mesh, p Point) bool {
	for i := range m.Triangles {
		f := m.Face(i)
		n := f.UnitNormal(m.Points)
		if math.Abs(n.Dot(p.Sub(m.Points[f.A]))) < 1e-9 {
			return true
		}
	}
	return false
}

func TestSeedUnitTetrahedron(t *testing.T) {
	m, err := BuildHull(unitTetra(), 0)
	require.NoError(t, err)
	require.Equal(t, 4, m.Len())
	require.Equal(t, 0, m.Step)
	require.Equal(t, [][3]int{{0, 2, 1}, {0, 3, 2}, {0, 1, 3}, {1, 2, 3}}, m.Triangles)
	require.Equal(t, []int{0, 1, 2, 3}, m.VertexIndices())

	seen := map[[3]int]bool{}
	for _, tri := range sortedTriples(m.Triangles) {
		require.False(t, seen[tri], "duplicate face %v", tri)
		seen[tri] = true
	}
	requireValidHull(t, m)

	// every input point is on the boundary
	for _, p := range m.Points {
		onFace := false
		for i := range m.Triangles {
			if SignedDistance(m.Face(i), m.Points, p) == 0 {
				onFace = true
			}
		}
		require.True(t, onFace)
	}
}

func TestSeedWindingBothSides(t *testing.T) {
	for idx, tc := range []struct {
		name   string
		points []Point
		fourth int
	}{
		{"front", unitTetra(), 3},
		{"behind", []Point{{X: 0}, {Y: 1}, {X: 1}, {Z: 1}}, 3},
		{"skip coplanar", []Point{{X: 0}, {X: 1}, {Y: 1}, {X: 0.1, Y: 0.1}, {X: 0.3, Y: 0.2, Z: -4}}, 4},
	} {
		t.Run(fmt.Sprintf("%d/%s", idx, tc.name), func(t *testing.T) {
			m, err := BuildHull(tc.points, 0)
			require.NoError(t, err)
			require.Equal(t, 4, m.Len())
			require.Equal(t, []int{0, 1, 2, tc.fourth}, m.VertexIndices())
			requireOutwardClosed(t, m)
		})
	}
}

func TestSeedPendingOrder(t *testing.T) {
	pts := []Point{{X: 0}, {X: 1}, {Y: 1}, {X: 0.2, Y: 0.2}, {Z: 1}, {X: 2, Y: 2, Z: 2}, {X: 0.1, Y: 0.1, Z: 0.1}}
	c, err := NewConvexHullComputer(pts)
	require.NoError(t, err)
	require.Equal(t, 3, c.Pending())

	var order []int
	for {
		in, ok := c.Step()
		if !ok {
			break
		}
		order = append(order, in.Point)
	}
	require.Equal(t, []int{3, 5, 6}, order)
	require.True(t, c.Done())
	require.Equal(t, 3, c.Steps())
}

func TestInsertInteriorPointAbsorbed(t *testing.T) {
	pts := append(unitTetra(), Point{X: 0.1, Y: 0.1, Z: 0.1})
	c, err := NewConvexHullComputer(pts)
	require.NoError(t, err)
	before := c.Faces()

	in, ok := c.Step()
	require.True(t, ok)
	require.True(t, in.Absorbed())
	require.Equal(t, Insertion{Point: 4}, in)
	require.Equal(t, before, c.Faces())

	m := c.Mesh()
	require.Equal(t, []int{0, 1, 2, 3}, m.VertexIndices())
	requireValidHull(t, m)
}

func TestInsertOutsidePoint(t *testing.T) {
	pts := append(unitTetra(), Point{X: 5, Y: 5, Z: 5})
	c, err := NewConvexHullComputer(pts)
	require.NoError(t, err)

	in, ok := c.Step()
	require.True(t, ok)
	require.Equal(t, Insertion{Point: 4, Visible: 1, Horizon: 3, Created: 3}, in)
	require.Equal(t, []Face{
		{0, 2, 1}, {0, 3, 2}, {0, 1, 3},
		{1, 2, 4}, {2, 3, 4}, {3, 1, 4},
	}, c.Faces())
	requireValidHull(t, c.Mesh())
}

func TestInsertCancelsSharedEdges(t *testing.T) {
	// (3, 3, -3) sees the z=0 face and the slanted one, so the edge they
	// share must not survive.
	pts := append(unitTetra(), Point{X: 3, Y: 3, Z: -3})
	c, err := NewConvexHullComputer(pts)
	require.NoError(t, err)

	in, _ := c.Step()
	require.Equal(t, 2, in.Visible)
	require.Equal(t, 4, in.Horizon)
	require.Equal(t, 6, len(c.Faces()))
	for _, f := range c.Faces() {
		require.False(t, f.HasVertex(1) && f.HasVertex(2) && !f.HasVertex(0) && !f.HasVertex(3),
			"interior edge 1-2 leaked into face %s", f)
	}
	requireValidHull(t, c.Mesh())
}

func TestBuildHullErrors(t *testing.T) {
	for idx, tc := range []struct {
		name   string
		points []Point
		err    error
	}{
		{"none", nil, ErrInsufficientPoints},
		{"three", unitTetra()[:3], ErrInsufficientPoints},
		{"flat", []Point{{X: 0}, {X: 1}, {Y: 1}, {X: 1, Y: 1}, {X: 3, Y: -2}}, ErrDegenerateInput},
		{"nearly flat", []Point{{X: 0}, {X: 1}, {Y: 1}, {X: 0.5, Y: 0.5, Z: 1e-9}}, ErrDegenerateInput},
		{"collinear seed", []Point{{X: 0}, {X: 1}, {X: 2}, {Z: 1}, {Y: 1}}, ErrDegenerateInput},
	} {
		t.Run(fmt.Sprintf("%d/%s", idx, tc.name), func(t *testing.T) {
			m, err := BuildHull(tc.points, FinalStep)
			require.ErrorIs(t, err, tc.err)
			require.Nil(t, m)

			c, err := NewConvexHullComputer(tc.points)
			require.ErrorIs(t, err, tc.err)
			require.Nil(t, c)
		})
	}
}

func TestWithEpsilon(t *testing.T) {
	pts := []Point{{X: 0}, {X: 1}, {Y: 1}, {X: 0.5, Y: 0.5, Z: 1e-9}}

	_, err := BuildHull(pts, FinalStep)
	require.ErrorIs(t, err, ErrDegenerateInput)

	m, err := BuildHull(pts, FinalStep, WithEpsilon(1e-12))
	require.NoError(t, err)
	require.Equal(t, 4, m.Len())

	require.Panics(t, func() { WithEpsilon(-1) })
}

func TestVisibilityPolicy(t *testing.T) {
	// the fifth point lies inside the z=0 face of the seed
	pts := append(unitTetra(), Point{X: 0.25, Y: 0.25, Z: 0})

	for idx, tc := range []struct {
		policy Visibility
		faces  int
		hull   []int
	}{
		{VisibilityInclusive, 6, []int{0, 1, 2, 3, 4}},
		{VisibilityStrict, 4, []int{0, 1, 2, 3}},
	} {
		t.Run(fmt.Sprintf("%d/%s", idx, tc.policy), func(t *testing.T) {
			m, err := BuildHull(pts, FinalStep, WithVisibility(tc.policy))
			require.NoError(t, err)
			require.Equal(t, tc.faces, m.Len())
			require.Equal(t, tc.hull, m.VertexIndices())
			require.True(t, m.IsClosed())
			require.True(t, m.IsConvex(1e-12))
		})
	}
}

func TestBuildHullSteps(t *testing.T) {
	pts := gridCloud(8367, 20)
	final, err := BuildHull(pts, FinalStep)
	require.NoError(t, err)
	requireValidHull(t, final)

	c, err := NewConvexHullComputer(pts)
	require.NoError(t, err)
	require.Equal(t, 16, c.Pending())

	for step := 0; step <= c.Pending()+c.Steps(); step++ {
		t.Run(fmt.Sprintf("%d", step), func(t *testing.T) {
			m, err := BuildHull(pts, step)
			require.NoError(t, err)
			require.Equal(t, step, m.Step)
			require.Equal(t, c.Faces(), m.Faces())
			requireOutwardClosed(t, m)
		})
		c.Step()
	}

	for _, step := range []int{16, 17, 1000} {
		m, err := BuildHull(pts, step)
		require.NoError(t, err)
		require.Equal(t, final.Triangles, m.Triangles)
		require.Equal(t, 16, m.Step)
	}
}

func TestBuildHullIdempotent(t *testing.T) {
	pts := gridCloud(99, 60)
	a, err := BuildHull(pts, FinalStep)
	require.NoError(t, err)
	b, err := BuildHull(pts, FinalStep)
	require.NoError(t, err)
	require.Equal(t, sortedTriples(a.Triangles), sortedTriples(b.Triangles))
}

func TestBuildHullRandomClouds(t *testing.T) {
	for idx, tc := range []struct {
		seed  int64
		count int
	}{
		{8367, 20},
		{1, 8},
		{2024, 50},
		{77, 120},
		{5, 100},
	} {
		t.Run(fmt.Sprintf("%d/seed=%d,n=%d", idx, tc.seed, tc.count), func(t *testing.T) {
			pts := gridCloud(tc.seed, tc.count)
			m, err := BuildHull(pts, FinalStep)
			require.NoError(t, err)
			requireValidHull(t, m)

			// Euler characteristic of a closed triangulated sphere.
			verts := len(m.VertexIndices())
			require.Equal(t, 2*verts-4, m.Len())

			// an independent hull's vertices all lie on our boundary, and are
			// hull vertices of ours unless they sit flat inside a face
			ours := map[int]bool{}
			for _, v := range m.VertexIndices() {
				ours[v] = true
			}
			ref := new(quickhull.QuickHull).ConvexHull(pts, true, true, 1e-6)
			require.NotEmpty(t, ref.Indices)
			for _, v := range ref.Indices {
				if ours[v] {
					continue
				}
				require.True(t, onBoundary(m, pts[v]), "point %d (%v) is inside the hull", v, pts[v])
			}
		})
	}
}

func TestBuildHullContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pts := gridCloud(3, 20)
	m, err := BuildHullContext(ctx, pts, FinalStep)
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, m)

	// no insertion needed, nothing to interrupt
	m, err = BuildHullContext(ctx, pts, 0)
	require.NoError(t, err)
	require.Equal(t, 4, m.Len())
}

func TestMeshIsSnapshot(t *testing.T) {
	pts := gridCloud(11, 12)
	c, err := NewConvexHullComputer(pts)
	require.NoError(t, err)

	m := c.Mesh()
	want := sortedTriples(m.Triangles)
	pts[0] = r3.Vector{X: 1000}
	c.Finish()

	require.Equal(t, want, sortedTriples(m.Triangles))
	require.NotEqual(t, pts[0], m.Points[0])

	m.Triangles[0] = [3]int{0, 0, 0}
	require.NotContains(t, c.Faces(), Face{0, 0, 0})
}

func TestResetAndRelease(t *testing.T) {
	pts := gridCloud(8367, 20)
	c, err := NewConvexHullComputer(pts)
	require.NoError(t, err)
	seed := c.Faces()

	require.Equal(t, 5, c.StepN(5))
	require.Equal(t, 5, c.Steps())
	require.Equal(t, 11, c.Finish())
	require.True(t, c.Done())
	require.Equal(t, 0, c.StepN(3))

	require.NoError(t, c.Reset())
	require.Equal(t, 0, c.Steps())
	require.Equal(t, 16, c.Pending())
	require.Equal(t, seed, c.Faces())

	c.Release()
	require.Nil(t, c.Faces())
	require.True(t, c.Done())
	_, ok := c.Step()
	require.False(t, ok)
	require.ErrorIs(t, c.Reset(), ErrReleased)
	require.Equal(t, 0, c.Mesh().Len())
	c.Release()
	require.ErrorIs(t, c.Reset(), ErrReleased)
}
