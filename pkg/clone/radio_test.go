package clone

import (
	"bytes"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/vxclone/pkg/image"
	"github.com/robotalks/vxclone/pkg/link"
)

// testRadio simulates the radio side of the link.
//
// With a source it plays a radio sending its image: the first segment is
// released on the first read and each ACK from the host is echoed and
// followed by the next segment.
//
// Without a source it plays a radio receiving an image: every data byte is
// echoed (or replaced by echo), the first two blocks end with the radio's
// ACK and the host's ACK is echoed back.
type testRadio struct {
	source  []byte
	segment int
	started bool

	memory      []byte
	received    int
	block, pos  int
	awaitingAck bool
	echo        func(offset int, b byte) []byte

	in      []byte
	reads   []int
	writes  []byte
	breaks  int
	flushes int
	calls   int
	closed  bool
}

func newSendingRadio(source []byte) *testRadio {
	return &testRadio{source: source}
}

func newReceivingRadio() *testRadio {
	return &testRadio{memory: make([]byte, image.Size)}
}

func (r *testRadio) segmentData(n int) []byte {
	start, end := image.SegmentBounds(n)
	if start > len(r.source) {
		start = len(r.source)
	}
	if end > len(r.source) {
		end = len(r.source)
	}
	return r.source[start:end]
}

func (r *testRadio) ReadN(n int) ([]byte, error) {
	r.calls++
	r.reads = append(r.reads, n)
	if r.closed {
		return nil, link.ErrClosed
	}
	if r.source != nil && !r.started {
		r.started = true
		r.in = append(r.in, r.segmentData(0)...)
	}
	if n > len(r.in) {
		n = len(r.in)
	}
	out := append([]byte(nil), r.in[:n]...)
	r.in = r.in[n:]
	return out, nil
}

func (r *testRadio) Write(p []byte) error {
	r.calls++
	if r.closed {
		return link.ErrClosed
	}
	for _, b := range p {
		r.writes = append(r.writes, b)
		if r.source != nil {
			r.hostAck(b)
		} else {
			r.receive(b)
		}
	}
	return nil
}

func (r *testRadio) hostAck(b byte) {
	if b != ACK {
		return
	}
	r.in = append(r.in, ACK)
	if r.segment++; r.segment < len(image.Segments) {
		r.in = append(r.in, r.segmentData(r.segment)...)
	}
}

func (r *testRadio) receive(b byte) {
	if r.awaitingAck {
		r.in = append(r.in, b)
		r.awaitingAck = false
		r.block++
		r.pos = 0
		return
	}
	start, _ := image.SegmentBounds(r.block)
	offset := start + r.pos
	r.memory[offset] = b
	r.received++
	r.pos++

	echo := []byte{b}
	if r.echo != nil {
		if e := r.echo(offset, b); e != nil {
			echo = e
		}
	}
	r.in = append(r.in, echo...)
	if r.block == len(image.Segments)-1 {
		return
	}
	if len(echo) > 1 && echo[len(echo)-1] == ACK {
		// ACK merged into the echo
		r.awaitingAck = true
		return
	}
	if r.pos == image.Segments[r.block] {
		r.in = append(r.in, ACK)
		r.awaitingAck = true
	}
}

func (r *testRadio) SendBreak(d time.Duration) error {
	r.calls++
	r.breaks++
	return nil
}

func (r *testRadio) BytesWaiting() (int, error) {
	r.calls++
	return len(r.in), nil
}

func (r *testRadio) FlushInput() error {
	r.calls++
	r.flushes++
	r.in = nil
	return nil
}

func (r *testRadio) FlushOutput() error {
	r.calls++
	r.flushes++
	return nil
}

func (r *testRadio) Close() error {
	r.closed = true
	return nil
}

// blockingLink blocks reads until closed.
type blockingLink struct {
	closeCh chan struct{}
	once    sync.Once
}

func newBlockingLink() *blockingLink {
	return &blockingLink{closeCh: make(chan struct{})}
}

func (l *blockingLink) ReadN(n int) ([]byte, error) {
	<-l.closeCh
	return nil, link.ErrClosed
}

func (l *blockingLink) Write(p []byte) error            { return nil }
func (l *blockingLink) SendBreak(d time.Duration) error { return nil }
func (l *blockingLink) BytesWaiting() (int, error)      { return 0, nil }
func (l *blockingLink) FlushInput() error               { return nil }
func (l *blockingLink) FlushOutput() error              { return nil }

func (l *blockingLink) Close() error {
	l.once.Do(func() { close(l.closeCh) })
	return nil
}

func (l *blockingLink) isClosed() bool {
	select {
	case <-l.closeCh:
		return true
	default:
		return false
	}
}

func randomImage(seed int64) image.Image {
	img := make(image.Image, image.Size)
	rand.New(rand.NewSource(seed)).Read(img)
	return img
}

func validImage(t *testing.T, seed int64) image.Image {
	img, _, err := image.Corrected(randomImage(seed))
	require.NoError(t, err)
	return img
}

// imageWith returns a valid image with the byte at offset set to b.
func imageWith(t *testing.T, seed int64, offset int, b byte) image.Image {
	img := randomImage(seed)
	img[offset] = b
	img, _, err := image.Corrected(img)
	require.NoError(t, err)
	require.Equal(t, b, img[offset])
	return img
}

func newTestEngine(opts ...Option) *Engine {
	return New(append([]Option{WithSettleDelay(0), WithBreakDuration(0)}, opts...)...)
}

func join(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}
