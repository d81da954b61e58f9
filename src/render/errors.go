package render

import (
	"github.com/pkg/errors"
)

var (
	ErrIndexOutOfRange = errors.New("render: triangle index out of range")
	ErrNilMesh         = errors.New("render: nil mesh")
)

// indexError reports a triangle corner that does not name a point. The
// returned error carries the caller's stack.
func indexError(triangle, corner, index, points int) error {
	return errors.Wrapf(ErrIndexOutOfRange,
		"triangle %d corner %d references point %d of %d", triangle, corner, index, points)
}

// drawError attaches the failing draw call to an error returned by a Target.
func drawError(err error, call string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "render: %s", call)
}
