package monitor

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/vxclone/pkg/clone"
)

type message struct {
	topic   string
	payload []byte
	retain  bool
}

type testSink struct {
	msgs []message
	err  error
}

func (s *testSink) Publish(topic string, payload []byte, retain bool) error {
	s.msgs = append(s.msgs, message{topic: topic, payload: payload, retain: retain})
	return s.err
}

func newTestPublisher(sink Sink) *Publisher {
	p := NewPublisher(sink, "host")
	p.now = func() time.Time { return time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC) }
	return p
}

func TestPublisherState(t *testing.T) {
	sink := &testSink{}
	p := newTestPublisher(sink)
	p.State(clone.ToRadio, clone.StateComplete)

	require.Len(t, sink.msgs, 1)
	msg := sink.msgs[0]
	require.Equal(t, "host/state", msg.topic)
	require.True(t, msg.retain)
	var state StateMessage
	require.NoError(t, json.Unmarshal(msg.payload, &state))
	require.Equal(t, StateMessage{
		Direction: "write",
		State:     "complete",
		Final:     true,
		Time:      time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
	}, state)
}

func TestPublisherProgressThrottled(t *testing.T) {
	sink := &testSink{}
	p := newTestPublisher(sink)
	p.State(clone.FromRadio, clone.StateIdle)
	for done := 0; done <= 400; done++ {
		p.Progress(clone.Progress{
			Direction: clone.FromRadio,
			State:     clone.StateSegment3,
			Segment:   3,
			Done:      done,
			Total:     400,
			Elapsed:   1500 * time.Millisecond,
		})
	}
	p.Progress(clone.Progress{Direction: clone.FromRadio, State: clone.StateComplete, Done: 400, Total: 400})

	// state, 0..100 percent, and the final state
	require.Len(t, sink.msgs, 1+101+1)
	var prog ProgressMessage
	require.NoError(t, json.Unmarshal(sink.msgs[1].payload, &prog))
	require.Equal(t, ProgressMessage{
		Direction: "read",
		State:     "segment-3",
		Segment:   3,
		Total:     400,
		ElapsedMs: 1500,
	}, prog)
	require.Equal(t, "host/progress", sink.msgs[1].topic)
	require.False(t, sink.msgs[1].retain)

	require.NoError(t, json.Unmarshal(sink.msgs[len(sink.msgs)-1].payload, &prog))
	require.Equal(t, "complete", prog.State)
	require.Equal(t, 100.0, prog.Percent)
}

func TestPublisherIgnoresErrors(t *testing.T) {
	sink := &testSink{err: errors.New("broker down")}
	p := newTestPublisher(sink)
	require.NotPanics(t, func() {
		p.State(clone.ToRadio, clone.StateSegment1)
		p.Progress(clone.Progress{Direction: clone.ToRadio, State: clone.StateSegment1, Total: 10})
	})
	require.Len(t, sink.msgs, 2)
}
