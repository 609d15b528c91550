package link

import (
	"errors"
	"fmt"
)

// ErrClosed is returned when using a closed Link.
var ErrClosed = errors.New("link closed")

// UnavailableError indicates the serial device can't be opened or used.
type UnavailableError struct {
	Path string
	Err  error
}

// Error implements error.
func (e *UnavailableError) Error() string {
	return fmt.Sprintf("serial device %s unavailable: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// IsUnavailable returns true if err is or wraps an UnavailableError.
func IsUnavailable(err error) bool {
	var e *UnavailableError
	return errors.As(err, &e)
}
