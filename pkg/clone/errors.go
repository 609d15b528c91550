package clone

import (
	"encoding/hex"
	"fmt"
)

// EchoMismatchError indicates the radio echoed something other than the
// byte which was sent and the transfer had to stop.
type EchoMismatchError struct {
	// Segment is the 1-based segment number.
	Segment int
	// Offset is the offset of the byte within its block.
	Offset int
	// ImageOffset is the offset of the byte within the image.
	ImageOffset int
	Expected    byte
	Actual      []byte
	Fatal       bool
}

// Error implements error.
func (e *EchoMismatchError) Error() string {
	return fmt.Sprintf("echo mismatch in segment %d at block offset %d (image offset 0x%x): sent %02x, read back %q",
		e.Segment, e.Offset, e.ImageOffset, e.Expected, hex.EncodeToString(e.Actual))
}
