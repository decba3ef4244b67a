package imageutil

import "github.com/pkg/errors"

// ErrInvalidArgument is returned, wrapped with context, whenever an
// operation is called with an empty image, a malformed kernel, a
// non-positive sigma or inverted thresholds. Test for it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidArgument(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
