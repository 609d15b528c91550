package link

import "time"

// Fixed link parameters of the clone protocol.
const (
	BaudRate    = 19200
	ReadTimeout = 30 * time.Second
)

// Link is a half-duplex byte connection to the radio.
type Link interface {
	// ReadN blocks until n bytes arrive or the read timeout elapses.
	// Fewer than n bytes are returned on timeout, without error.
	ReadN(n int) ([]byte, error)
	// Write writes all of p.
	Write(p []byte) error
	// SendBreak holds a break condition for d.
	SendBreak(d time.Duration) error
	// BytesWaiting returns the number of bytes readable without blocking.
	BytesWaiting() (int, error)
	// FlushInput discards pending input.
	FlushInput() error
	// FlushOutput discards pending output.
	FlushOutput() error
	// Close releases the device. It can be called more than once.
	Close() error
}

// Opener opens a Link.
type Opener func() (Link, error)
