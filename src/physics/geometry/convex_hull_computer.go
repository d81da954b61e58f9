package geometry

import (
	"context"
	"log/slog"
	"math"

	"github.com/pkg/errors"
)

// Insertion describes what admitting one pending point did to the hull.
type Insertion struct {
	Point   int
	Visible int
	Horizon int
	Created int
}

// Absorbed reports whether the point saw no face and left the hull unchanged.
func (in Insertion) Absorbed() bool {
	return in.Visible == 0
}

// ConvexHullComputer owns a copy of the input points and the hull built from
// them so far. It starts from the seed tetrahedron and admits the remaining
// points one at a time, in index order.
//
// A ConvexHullComputer is not safe for concurrent use.
type ConvexHullComputer struct {
	points  []Point
	faces   *FaceSet
	horizon Horizon
	pending []int
	next    int
	opts    Options
	log     *slog.Logger
}

// NewConvexHullComputer copies points and builds the seed tetrahedron.
func NewConvexHullComputer(points []Point, opts ...Option) (*ConvexHullComputer, error) {
	if len(points) < seedPoints {
		return nil, errors.Wrapf(ErrInsufficientPoints, "got %d", len(points))
	}

	o := defaultOptions()
	for _, set := range opts {
		set(&o)
	}
	log := o.Logger
	if log == nil {
		log = Logger()
	}

	c := &ConvexHullComputer{
		points: clonePoints(points),
		opts:   o,
		log:    log,
	}
	if err := c.seed(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ConvexHullComputer) seed() error {
	n := len(c.points)
	a, b, cc := 0, 1, 2
	normal := NewFace(a, b, cc).GetNormal(c.points)

	d := -1
	dist := 0.0
	for i := 3; i < n; i++ {
		dist = planeDistance(normal, c.points[a], c.points[i])
		if math.Abs(dist) > c.opts.Epsilon {
			d = i
			break
		}
	}
	if d < 0 {
		return errors.Wrapf(ErrDegenerateInput, "%d points within %g of the first plane", n, c.opts.Epsilon)
	}

	c.faces = NewFaceSet(2 * n)
	if dist < 0 {
		c.faces.Append(NewFace(a, b, cc))
		c.faces.Append(NewFace(a, cc, d))
		c.faces.Append(NewFace(a, d, b))
		c.faces.Append(NewFace(b, d, cc))
	} else {
		// d is in front of (a, b, c): flip every face so it points away from d.
		c.faces.Append(NewFace(a, cc, b))
		c.faces.Append(NewFace(a, d, cc))
		c.faces.Append(NewFace(a, b, d))
		c.faces.Append(NewFace(b, cc, d))
	}

	c.pending = make([]int, 0, n-seedPoints)
	for i := 3; i < n; i++ {
		if i != d {
			c.pending = append(c.pending, i)
		}
	}
	c.next = 0
	c.horizon.Reset()

	c.log.Debug("hull seeded", "points", n, "fourth", d, "mirrored", dist > 0)
	return nil
}

func (c *ConvexHullComputer) canSee(f Face, p Point) bool {
	if c.opts.Visibility == VisibilityStrict {
		return SignedDistance(f, c.points, p) > c.opts.Epsilon
	}
	return CanSee(f, c.points, p)
}

// insert admits point p: every face p can see is removed, and the boundary of
// the removed region is stitched to p. Horizon edges keep the direction of the
// face they came from, which keeps the new faces wound outward.
func (c *ConvexHullComputer) insert(p int) Insertion {
	pt := c.points[p]
	c.horizon.Reset()

	visible := c.faces.RemoveFunc(func(f Face) bool {
		if !c.canSee(f, pt) {
			return false
		}
		for _, e := range f.Edges() {
			c.horizon.Toggle(e)
		}
		return true
	})

	for _, e := range c.horizon.Edges() {
		c.faces.Append(NewFace(e.From, e.To, p))
	}

	in := Insertion{
		Point:   p,
		Visible: visible,
		Horizon: c.horizon.Len(),
		Created: c.horizon.Len(),
	}
	c.horizon.Reset()

	if in.Absorbed() {
		c.log.Debug("point absorbed", "point", p)
	} else {
		c.log.Debug("point inserted", "point", p, "visible", in.Visible, "horizon", in.Horizon, "faces", c.faces.Len())
	}
	return in
}

// Step admits the next pending point. It returns false once every point has
// been admitted.
func (c *ConvexHullComputer) Step() (Insertion, bool) {
	if c.Done() {
		return Insertion{}, false
	}
	p := c.pending[c.next]
	c.next++
	return c.insert(p), true
}

// StepN admits up to n pending points and returns how many were admitted.
func (c *ConvexHullComputer) StepN(n int) int {
	done := 0
	for done < n {
		if _, ok := c.Step(); !ok {
			break
		}
		done++
	}
	return done
}

// Finish admits every remaining point.
func (c *ConvexHullComputer) Finish() int {
	return c.StepN(c.Pending())
}

// Steps is the number of points admitted since the seed.
func (c *ConvexHullComputer) Steps() int {
	return c.next
}

func (c *ConvexHullComputer) Pending() int {
	return len(c.pending) - c.next
}

func (c *ConvexHullComputer) Done() bool {
	return c.next >= len(c.pending)
}

func (c *ConvexHullComputer) NumPoints() int {
	return len(c.points)
}

// Faces returns a copy of the current faces.
func (c *ConvexHullComputer) Faces() []Face {
	if c.faces == nil {
		return nil
	}
	return c.faces.Faces()
}

// Mesh snapshots the current hull. The snapshot shares nothing with c.
func (c *ConvexHullComputer) Mesh() *Mesh {
	return newMesh(c.points, c.Faces(), c.next)
}

// Reset discards every admitted point and rebuilds the seed tetrahedron.
func (c *ConvexHullComputer) Reset() error {
	if c.points == nil {
		return ErrReleased
	}
	return c.seed()
}

// Release drops the point buffer and the face set. A released computer has
// no pending points and an empty hull.
func (c *ConvexHullComputer) Release() {
	c.points = nil
	c.faces = nil
	c.pending = nil
	c.next = 0
	c.horizon = Horizon{}
}

// BuildHull builds the hull of points after step insertions past the seed
// tetrahedron. Step 0 is the seed itself, a negative step (FinalStep) or a
// step beyond the number of pending points is the complete hull.
func BuildHull(points []Point, step int, opts ...Option) (*Mesh, error) {
	return BuildHullContext(context.Background(), points, step, opts...)
}

// BuildHullContext is BuildHull checking ctx between insertions. On
// cancellation nothing is returned but the wrapped context error.
func BuildHullContext(ctx context.Context, points []Point, step int, opts ...Option) (*Mesh, error) {
	c, err := NewConvexHullComputer(points, opts...)
	if err != nil {
		return nil, err
	}
	defer c.Release()

	if step < 0 || step > c.Pending() {
		step = c.Pending()
	}
	for i := 0; i < step; i++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "geometry: hull interrupted after %d of %d steps", i, step)
		}
		c.Step()
	}
	return c.Mesh(), nil
}
