package image

import "fmt"

// LengthMismatchError indicates an image is not exactly Size bytes.
type LengthMismatchError struct {
	Expected int
	Actual   int
}

// Error implements error.
func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("incorrect image length: expected %d bytes, got %d", e.Expected, e.Actual)
}

// CheckLength returns a LengthMismatchError if data is not a full image.
func CheckLength(data []byte) error {
	if len(data) != Size {
		return &LengthMismatchError{Expected: Size, Actual: len(data)}
	}
	return nil
}
