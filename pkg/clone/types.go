package clone

import (
	"fmt"
	"time"
)

// ACK is the acknowledgment byte.
const ACK byte = 0x06

// Direction of a transfer.
type Direction int

// Transfer directions.
const (
	// FromRadio receives an image from the radio.
	FromRadio Direction = iota
	// ToRadio sends an image to the radio.
	ToRadio
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case FromRadio:
		return "read"
	case ToRadio:
		return "write"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// State is the state of a transfer.
type State int

// Transfer states, in protocol order.
const (
	StateIdle State = iota
	StateFlushed
	StateSegment1
	StateSegment2
	StateSegment3
	StateComplete
	StateAborted
)

var stateNames = map[State]string{
	StateIdle:     "idle",
	StateFlushed:  "flushed",
	StateSegment1: "segment-1",
	StateSegment2: "segment-2",
	StateSegment3: "segment-3",
	StateComplete: "complete",
	StateAborted:  "aborted",
}

// String implements fmt.Stringer.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// IsFinal tells whether the transfer is over.
func (s State) IsFinal() bool {
	return s == StateComplete || s == StateAborted
}

func segmentState(n int) State {
	return StateSegment1 + State(n)
}

// Progress reports how far a transfer is.
type Progress struct {
	Direction Direction
	State     State
	// Segment is the 1-based segment number, 0 outside of segments.
	Segment int
	// Done is the number of image bytes transferred so far.
	Done int
	// Total is the image size.
	Total   int
	Elapsed time.Duration
}

// Percentage returns the completion percentage.
func (p Progress) Percentage() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Done) * 100 / float64(p.Total)
}

// ProgressCallback is called while a transfer is running. It must return
// quickly, the radio times the exchange.
type ProgressCallback func(Progress)

// StateCallback is called on each state transition.
type StateCallback func(Direction, State)

// Prompter asks the operator to put the radio in clone mode for the given
// direction, and returns once the operator is ready.
type Prompter func(Direction) error
