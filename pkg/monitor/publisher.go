package monitor

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/vxclone/pkg/clone"
)

// Topics under <prefix><host-id>/.
const (
	ProgressTopic = "progress"
	StateTopic    = "state"
)

// Sink receives published messages.
type Sink interface {
	Publish(topic string, payload []byte, retain bool) error
}

// ProgressMessage is the payload of the progress topic.
type ProgressMessage struct {
	Direction string  `json:"direction"`
	State     string  `json:"state"`
	Segment   int     `json:"segment"`
	Done      int     `json:"done"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
	ElapsedMs int64   `json:"elapsed_ms"`
}

// StateMessage is the payload of the state topic.
type StateMessage struct {
	Direction string    `json:"direction"`
	State     string    `json:"state"`
	Final     bool      `json:"final"`
	Time      time.Time `json:"time"`
}

// Publisher publishes transfer events to a Sink. Failures are logged and
// otherwise ignored so a broker outage never affects a transfer.
type Publisher struct {
	Sink   Sink
	HostID string

	lock    sync.Mutex
	percent int
	now     func() time.Time
}

// NewPublisher creates a Publisher.
func NewPublisher(sink Sink, hostID string) *Publisher {
	return &Publisher{Sink: sink, HostID: hostID, percent: -1, now: time.Now}
}

// Monitor is a connected Publisher. Messages reach the broker from a
// background goroutine so transfer callbacks never wait on it.
type Monitor struct {
	*Publisher
	sink  *AsyncSink
	queue *Queue
}

// NewFromURL connects to the broker at brokerURL and returns a Monitor
// publishing under the topic prefix from the URL path.
func NewFromURL(brokerURL string) (*Monitor, error) {
	hostID := HostID()
	q, err := NewQueueFromURL(brokerURL, ClientID(hostID))
	if err != nil {
		return nil, err
	}
	if err := q.Connect(); err != nil {
		return nil, err
	}
	sink := NewAsyncSink(q, DefaultBacklog)
	return &Monitor{Publisher: NewPublisher(sink, hostID), sink: sink, queue: q}, nil
}

// Close flushes pending messages and disconnects.
func (m *Monitor) Close() error {
	m.sink.Close()
	return m.queue.Close()
}
