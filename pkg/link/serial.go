package link

import (
	"sync"
	"time"

	"github.com/golang/glog"
	"go.bug.st/serial"
)

// port is the subset of serial.Port used by Serial.
type port interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Break(d time.Duration) error
	ResetInputBuffer() error
	ResetOutputBuffer() error
	SetReadTimeout(t time.Duration) error
	Close() error
}

// waitingBufferSize bounds a single poll of BytesWaiting.
const waitingBufferSize = 4096

// Serial implements Link over a serial port.
type Serial struct {
	path    string
	port    port
	timeout time.Duration

	// pending holds bytes already pulled from the port by BytesWaiting.
	pending []byte

	closeOnce sync.Once
	closeErr  error
	done      chan struct{}
}

// Open opens the serial device at path with the clone link parameters.
func Open(path string) (*Serial, error) {
	p, err := serial.Open(path, &serial.Mode{
		BaudRate: BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.TwoStopBits,
	})
	if err != nil {
		return nil, &UnavailableError{Path: path, Err: err}
	}
	s := newSerial(path, p, ReadTimeout)
	if err := p.SetReadTimeout(ReadTimeout); err != nil {
		p.Close()
		return nil, &UnavailableError{Path: path, Err: err}
	}
	glog.V(1).Infof("opened %s at %d baud", path, BaudRate)
	return s, nil
}

// NewOpener returns an Opener for the device at path.
func NewOpener(path string) Opener {
	return func() (Link, error) {
		s, err := Open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func newSerial(path string, p port, timeout time.Duration) *Serial {
	return &Serial{path: path, port: p, timeout: timeout, done: make(chan struct{})}
}

func (s *Serial) isClosed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Path returns the device path.
func (s *Serial) Path() string {
	return s.path
}

// ReadN implements Link.
func (s *Serial) ReadN(n int) ([]byte, error) {
	if s.isClosed() {
		return nil, ErrClosed
	}
	out := make([]byte, 0, n)
	if len(s.pending) > 0 {
		c := copy(out[:n], s.pending)
		out = out[:c]
		s.pending = s.pending[c:]
	}
	buf := make([]byte, n)
	deadline := time.Now().Add(s.timeout)
	for len(out) < n {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		if err := s.port.SetReadTimeout(remaining); err != nil {
			return out, s.unavailable(err)
		}
		c, err := s.port.Read(buf[:n-len(out)])
		if err != nil {
			return out, s.unavailable(err)
		}
		if c == 0 {
			// timeout
			break
		}
		out = append(out, buf[:c]...)
	}
	return out, nil
}

// Write implements Link.
func (s *Serial) Write(p []byte) error {
	if s.isClosed() {
		return ErrClosed
	}
	for len(p) > 0 {
		n, err := s.port.Write(p)
		if err != nil {
			return s.unavailable(err)
		}
		p = p[n:]
	}
	return nil
}

// SendBreak implements Link.
func (s *Serial) SendBreak(d time.Duration) error {
	if s.isClosed() {
		return ErrClosed
	}
	if err := s.port.Break(d); err != nil {
		return s.unavailable(err)
	}
	return nil
}

// BytesWaiting implements Link.
func (s *Serial) BytesWaiting() (int, error) {
	if s.isClosed() {
		return 0, ErrClosed
	}
	if err := s.port.SetReadTimeout(0); err != nil {
		return len(s.pending), s.unavailable(err)
	}
	buf := make([]byte, waitingBufferSize)
	for {
		n, err := s.port.Read(buf)
		if err != nil {
			return len(s.pending), s.unavailable(err)
		}
		if n == 0 {
			break
		}
		s.pending = append(s.pending, buf[:n]...)
	}
	return len(s.pending), nil
}

// FlushInput implements Link.
func (s *Serial) FlushInput() error {
	if s.isClosed() {
		return ErrClosed
	}
	s.pending = nil
	if err := s.port.ResetInputBuffer(); err != nil {
		return s.unavailable(err)
	}
	return nil
}

// FlushOutput implements Link.
func (s *Serial) FlushOutput() error {
	if s.isClosed() {
		return ErrClosed
	}
	if err := s.port.ResetOutputBuffer(); err != nil {
		return s.unavailable(err)
	}
	return nil
}

// Close implements Link.
func (s *Serial) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.closeErr = s.port.Close()
		glog.V(1).Infof("closed %s", s.path)
	})
	return s.closeErr
}

func (s *Serial) unavailable(err error) error {
	return &UnavailableError{Path: s.path, Err: err}
}
