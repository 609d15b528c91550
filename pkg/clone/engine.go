package clone

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/vxclone/pkg/image"
	"github.com/robotalks/vxclone/pkg/link"
)

// Engine runs clone transfers over a link.
type Engine struct {
	config Config
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{config: cfg}
}

// transfer is the state of one Receive or Send.
type transfer struct {
	*Engine
	link      link.Link
	direction Direction
	state     State
	segment   int
	done      int
	startTime time.Time
}

func (e *Engine) newTransfer(l link.Link, dir Direction) *transfer {
	return &transfer{Engine: e, link: l, direction: dir, startTime: time.Now()}
}

// Receive reads a clone image from the radio. The returned image has its
// checkbytes corrected.
func (e *Engine) Receive(ctx context.Context, l link.Link) (image.Image, error) {
	t := e.newTransfer(l, FromRadio)
	if err := t.start(); err != nil {
		return nil, err
	}

	data := make([]byte, 0, image.Size)
	for n, size := range image.Segments {
		if err := ctx.Err(); err != nil {
			t.enter(StateAborted)
			return nil, err
		}
		t.enterSegment(n)
		seg, err := t.receiveSegment(size, n == len(image.Segments)-1)
		if err != nil {
			t.enter(StateAborted)
			return nil, fmt.Errorf("receive segment %d: %w", n+1, err)
		}
		data = append(data, seg...)
	}

	img, fixed, err := image.Corrected(data)
	if err != nil {
		glog.Errorf("incorrect data length: %d", len(data))
		t.enter(StateAborted)
		return nil, err
	}
	for _, off := range fixed {
		glog.Infof("corrected checkbyte at 0x%x", off)
	}
	t.enter(StateComplete)
	glog.Infof("received %d bytes in %s", len(img), time.Since(t.startTime))
	return img, nil
}

// Send writes a clone image to the radio. Mismatching checkbytes are
// corrected on a copy before sending, img itself is left untouched.
func (e *Engine) Send(ctx context.Context, l link.Link, img image.Image) error {
	if err := image.CheckLength(img); err != nil {
		glog.Errorf("incorrect data length: %d", len(img))
		return err
	}
	img, fixed, err := image.Corrected(img)
	if err != nil {
		return err
	}
	if len(fixed) > 0 {
		glog.V(1).Infof("checkbytes corrected before sending: %x", fixed)
	}

	t := e.newTransfer(l, ToRadio)
	if err := t.start(); err != nil {
		return err
	}

	for n := range image.Segments {
		if err := ctx.Err(); err != nil {
			t.enter(StateAborted)
			return err
		}
		t.enterSegment(n)
		start, end := image.SegmentBounds(n)
		final := n == len(image.Segments)-1
		res, err := t.sendBlock(ctx, img[start:end], start, final)
		if err != nil {
			t.enter(StateAborted)
			return fmt.Errorf("send segment %d: %w", n+1, err)
		}
		switch res.Status {
		case BlockAborted:
			t.enter(StateAborted)
			return &EchoMismatchError{
				Segment:     n + 1,
				Offset:      res.Offset,
				ImageOffset: start + res.Offset,
				Expected:    res.Sent,
				Actual:      res.Echo,
				Fatal:       true,
			}
		case BlockRecovered:
			glog.Infof("segment %d ended early at block offset %d, continuing", n+1, res.Offset)
		}
		// The ACK exchange runs after a recovered block as well. Some
		// adapter-specific clients skip it there.
		if !final {
			if err := t.acknowledge(); err != nil {
				t.enter(StateAborted)
				return fmt.Errorf("acknowledge segment %d: %w", n+1, err)
			}
		}
	}
	t.enter(StateComplete)
	glog.Infof("sent %d bytes in %s", len(img), time.Since(t.startTime))
	return nil
}

// start prompts the operator and flushes the link.
func (t *transfer) start() error {
	t.enter(StateIdle)
	if p := t.config.Prompter; p != nil {
		if err := p(t.direction); err != nil {
			return err
		}
	}
	if err := t.link.FlushInput(); err != nil {
		return err
	}
	if err := t.link.FlushOutput(); err != nil {
		return err
	}
	t.enter(StateFlushed)
	return nil
}

// receiveSegment reads one segment. All but the final one are followed by
// an ACK whose echo is only logged.
func (t *transfer) receiveSegment(size int, final bool) ([]byte, error) {
	glog.V(1).Infof("attempting to read %d bytes", size)
	data, err := t.link.ReadN(size)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("%d bytes of data read: %s", len(data), image.Snippet(data, 40))
	if len(data) < size {
		glog.Warningf("segment %d underrun: expected %d bytes, got %d", t.segment, size, len(data))
	}
	t.advance(len(data))
	if final {
		return data, nil
	}

	t.settle()
	if err := t.link.Write([]byte{ACK}); err != nil {
		return nil, err
	}
	ack, err := t.link.ReadN(1)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("ACK expected: %02x, seen: %s", ACK, image.Snippet(ack, 8))
	return data, nil
}

// acknowledge exchanges ACKs with the radio after a non-final block. None
// of the reads is checked, the exchange keeps both ends in step.
func (t *transfer) acknowledge() error {
	t.settle()
	ack, err := t.readBuffered()
	if err != nil {
		return err
	}
	glog.V(1).Infof("ACK expected: %02x, seen: %s", ACK, image.Snippet(ack, 8))
	if err := t.link.Write([]byte{ACK}); err != nil {
		return err
	}
	echo, err := t.readBuffered()
	if err != nil {
		return err
	}
	glog.V(1).Infof("ACK read back: %s", image.Snippet(echo, 8))
	return nil
}

// readBuffered reads at least one byte, and everything already buffered.
func (t *transfer) readBuffered() ([]byte, error) {
	n, err := t.link.BytesWaiting()
	if err != nil {
		return nil, err
	}
	if n < 1 {
		n = 1
	}
	return t.link.ReadN(n)
}

func (t *transfer) settle() {
	if d := t.config.SettleDelay; d > 0 {
		time.Sleep(d)
	}
}

func (t *transfer) enterSegment(n int) {
	t.segment = n + 1
	t.enter(segmentState(n))
}

func (t *transfer) enter(state State) {
	t.state = state
	glog.V(1).Infof("%s: %s", t.direction, state)
	if cb := t.config.StateCallback; cb != nil {
		cb(t.direction, state)
	}
	t.report()
}

func (t *transfer) advance(n int) {
	t.done += n
	t.report()
}

func (t *transfer) report() {
	if cb := t.config.ProgressCallback; cb != nil {
		segment := 0
		if t.state >= StateSegment1 && t.state <= StateSegment3 {
			segment = t.segment
		}
		cb(Progress{
			Direction: t.direction,
			State:     t.state,
			Segment:   segment,
			Done:      t.done,
			Total:     image.Size,
			Elapsed:   time.Since(t.startTime),
		})
	}
}
