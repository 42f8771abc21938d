package resolver

import (
	"errors"
	"fmt"
)

// ErrTooManyLinks is returned when resolution follows more symlinks than
// the configured bound allows, which almost always means a link cycle.
var ErrTooManyLinks = errors.New("too many levels of symbolic links")

// ResolutionError reports a path that could not be canonicalized.
type ResolutionError struct {
	Path string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve %s: %s", e.Path, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
