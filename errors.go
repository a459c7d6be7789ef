package assdraw

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned (wrapped) for out-of-domain parameters:
// non-positive dimensions, unknown operation or mode values, and similar
// caller mistakes. Test with errors.Is.
var ErrInvalidArgument = errors.New("assdraw: invalid argument")

// invalidf wraps ErrInvalidArgument with context.
func invalidf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidArgument)...)
}

// internalf panics with an internal-invariant message. Used for
// should-never-happen conditions that indicate a bug in the package itself,
// such as a ring count mismatch after resampling.
func internalf(format string, args ...any) {
	panic(fmt.Sprintf("assdraw: internal: "+format, args...))
}
