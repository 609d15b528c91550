package monitor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang/glog"
)

// Event is a progress or state message received from a host.
type Event struct {
	HostID   string
	Progress *ProgressMessage
	State    *StateMessage
}

// String formats the event for display.
func (e Event) String() string {
	switch {
	case e.Progress != nil:
		p := e.Progress
		return fmt.Sprintf("%s: %s %s %d/%d (%.1f%%) %dms",
			e.HostID, p.Direction, p.State, p.Done, p.Total, p.Percent, p.ElapsedMs)
	case e.State != nil:
		return fmt.Sprintf("%s: %s %s", e.HostID, e.State.Direction, e.State.State)
	}
	return e.HostID
}

// DecodeEvent decodes a message published by a Publisher. topic is
// relative to the prefix.
func DecodeEvent(topic string, payload []byte) (Event, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 2 {
		return Event{}, fmt.Errorf("unexpected topic %q", topic)
	}
	ev := Event{HostID: parts[0]}
	var msg interface{}
	switch parts[1] {
	case ProgressTopic:
		ev.Progress = &ProgressMessage{}
		msg = ev.Progress
	case StateTopic:
		ev.State = &StateMessage{}
		msg = ev.State
	default:
		return Event{}, fmt.Errorf("unexpected topic %q", topic)
	}
	if err := json.Unmarshal(payload, msg); err != nil {
		return Event{}, fmt.Errorf("%s: %w", topic, err)
	}
	return ev, nil
}

// Watch subscribes to the transfers of all hosts publishing under the
// prefix of q. Undecodable messages are logged and dropped.
func Watch(q *Queue, fn func(Event)) ([]*Subscription, error) {
	handler := func(topic string, payload []byte) {
		ev, err := DecodeEvent(topic, payload)
		if err != nil {
			glog.Warningf("bad message: %v", err)
			return
		}
		fn(ev)
	}
	var subs []*Subscription
	for _, topic := range []string{StateTopic, ProgressTopic} {
		sub, err := q.Sub("+/"+topic, handler)
		if err != nil {
			for _, s := range subs {
				s.Close()
			}
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}
