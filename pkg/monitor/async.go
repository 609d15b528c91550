package monitor

import (
	"sync"

	"github.com/golang/glog"
)

// DefaultBacklog is the number of messages an AsyncSink buffers.
const DefaultBacklog = 256

// AsyncSink forwards messages to a Sink from a background goroutine so
// Publish never waits for the broker. Messages are dropped when the
// backlog is full.
type AsyncSink struct {
	sink    Sink
	msgs    chan asyncMessage
	done    chan struct{}
	closing sync.Once
	lock    sync.RWMutex
	closed  bool
}

type asyncMessage struct {
	topic   string
	payload []byte
	retain  bool
}

// NewAsyncSink starts forwarding to sink with room for backlog messages.
func NewAsyncSink(sink Sink, backlog int) *AsyncSink {
	if backlog <= 0 {
		backlog = DefaultBacklog
	}
	s := &AsyncSink{
		sink: sink,
		msgs: make(chan asyncMessage, backlog),
		done: make(chan struct{}),
	}
	go s.run()
	return s
}

// Publish implements Sink. It only fails after Close.
func (s *AsyncSink) Publish(topic string, payload []byte, retain bool) error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.closed {
		return ErrSinkClosed
	}
	select {
	case s.msgs <- asyncMessage{topic: topic, payload: payload, retain: retain}:
	default:
		glog.Warningf("monitor: backlog full, dropped %s", topic)
	}
	return nil
}

// Close stops accepting messages and waits until the backlog is flushed.
func (s *AsyncSink) Close() error {
	s.closing.Do(func() {
		s.lock.Lock()
		s.closed = true
		close(s.msgs)
		s.lock.Unlock()
	})
	<-s.done
	return nil
}

func (s *AsyncSink) run() {
	defer close(s.done)
	for msg := range s.msgs {
		if err := s.sink.Publish(msg.topic, msg.payload, msg.retain); err != nil {
			glog.Warningf("monitor: publish %s: %v", msg.topic, err)
		}
	}
}
