package monitor

import (
	"container/list"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
)

// DefaultTimeout bounds how long a publish or connect may block.
const DefaultTimeout = 2 * time.Second

// ErrTimeout is returned when the broker doesn't acknowledge in time.
var ErrTimeout = errors.New("mqtt: timeout")

// ErrSinkClosed is returned when publishing to a closed AsyncSink.
var ErrSinkClosed = errors.New("monitor: sink closed")

// Handler is the callback when a message is received.
type Handler func(topic string, payload []byte)

// Queue wraps MQTT client.
type Queue struct {
	Client      paho.Client
	TopicPrefix string
	Timeout     time.Duration

	subsLock sync.RWMutex
	subs     map[string]*list.List
}

// Subscription is a subscribed topic pattern.
type Subscription struct {
	queue   *Queue
	elm     *list.Element
	pattern string
	handler Handler
}

// MatchTopic matches topic with pattern.
func MatchTopic(topic, pattern string) bool {
	tokensT, tokensP := strings.Split(topic, "/"), strings.Split(pattern, "/")
	if len(tokensP) > len(tokensT) {
		return false
	}
	for i, token := range tokensP {
		if token == "+" {
			continue
		}
		if token == "#" && i+1 == len(tokensP) {
			return true
		}
		if token != tokensT[i] {
			return false
		}
	}
	return len(tokensP) == len(tokensT)
}

// ClientOptionsFromURL creates ClientOptions from URL. The client ID comes
// from the client-id query parameter, or defaultClientID if absent.
func ClientOptionsFromURL(serverURL, defaultClientID string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, "", err
	}
	if u.Host == "" {
		return nil, "", fmt.Errorf("mqtt: missing broker host in %q", serverURL)
	}
	var server string
	if u.Scheme == "" || u.Scheme == "mqtt" {
		server = "tcp"
	} else {
		server = u.Scheme
	}
	server += "://" + u.Host

	topicPrefix := strings.TrimPrefix(u.Path, "/")
	if topicPrefix != "" && !strings.HasSuffix(topicPrefix, "/") {
		topicPrefix += "/"
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(server).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}

	clientID := u.Query().Get("client-id")
	if clientID == "" {
		clientID = defaultClientID
	}
	opts.SetClientID(clientID)

	return opts, topicPrefix, nil
}

// NewQueue creates Queue.
func NewQueue(options *paho.ClientOptions, topicPrefix string) *Queue {
	q := &Queue{TopicPrefix: topicPrefix, Timeout: DefaultTimeout}
	options.SetOnConnectHandler(q.OnConnectHandler)
	options.SetConnectionLostHandler(q.ConnectionLostHandler)
	q.Client = paho.NewClient(options)
	return q
}

// NewQueueFromURL creates Queue from URL.
func NewQueueFromURL(brokerURL, defaultClientID string) (*Queue, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL, defaultClientID)
	if err != nil {
		return nil, err
	}
	return NewQueue(opts, topicPrefix), nil
}

// Connect connects the client and waits for the broker.
func (q *Queue) Connect() error {
	return q.wait(q.Client.Connect())
}

// Close implements io.Closer.
func (q *Queue) Close() error {
	q.Client.Disconnect(250)
	return nil
}

// Publish publishes payload to a topic under the prefix.
func (q *Queue) Publish(topic string, payload []byte, retain bool) error {
	glog.V(2).Infof("PUB %q", q.TopicPrefix+topic)
	return q.wait(q.Client.Publish(q.TopicPrefix+topic, 0, retain, payload))
}

func (q *Queue) wait(token paho.Token) error {
	timeout := q.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if !token.WaitTimeout(timeout) {
		return ErrTimeout
	}
	return token.Error()
}

// Sub subscribes a topic pattern under the prefix. Wildcards + and # are
// allowed.
func (q *Queue) Sub(pattern string, handler Handler) (*Subscription, error) {
	var newSub bool
	q.subsLock.Lock()
	if q.subs == nil {
		q.subs = make(map[string]*list.List)
	}
	lst := q.subs[pattern]
	if lst == nil {
		lst = list.New()
		q.subs[pattern] = lst
		newSub = true
	}
	sub := &Subscription{queue: q, pattern: pattern, handler: handler}
	sub.elm = lst.PushBack(sub)
	q.subsLock.Unlock()

	if newSub && q.Client != nil {
		glog.V(2).Infof("SUB %q", q.TopicPrefix+pattern)
		if err := q.wait(q.Client.Subscribe(q.TopicPrefix+pattern, 0, q.dispatch)); err != nil {
			sub.Close()
			return nil, err
		}
	}
	return sub, nil
}

// Resubscribe subscribes all existing patterns, after a reconnect.
func (q *Queue) Resubscribe() paho.Token {
	filters := make(map[string]byte)
	q.subsLock.RLock()
	for pattern := range q.subs {
		filters[q.TopicPrefix+pattern] = 0
	}
	q.subsLock.RUnlock()
	if len(filters) > 0 {
		return q.Client.SubscribeMultiple(filters, q.dispatch)
	}
	return &paho.DummyToken{}
}

// OnConnectHandler is the default implementation of paho.OnConnectHandler.
func (q *Queue) OnConnectHandler(paho.Client) {
	glog.Info("monitor connected")
	q.Resubscribe()
}

// ConnectionLostHandler is the default implementation of paho.ConnectLostHandler.
func (q *Queue) ConnectionLostHandler(c paho.Client, err error) {
	glog.Warningf("monitor connection lost: %v", err)
}

func (q *Queue) dispatch(c paho.Client, msg paho.Message) {
	q.deliver(msg.Topic(), msg.Payload())
}

func (q *Queue) deliver(topic string, payload []byte) {
	if !strings.HasPrefix(topic, q.TopicPrefix) {
		return
	}
	glog.V(2).Infof("RCV %q", topic)
	topic = topic[len(q.TopicPrefix):]
	var handlers []Handler
	q.subsLock.RLock()
	for pattern, lst := range q.subs {
		if MatchTopic(topic, pattern) {
			for elm := lst.Front(); elm != nil; elm = elm.Next() {
				handlers = append(handlers, elm.Value.(*Subscription).handler)
			}
		}
	}
	q.subsLock.RUnlock()
	for _, h := range handlers {
		h(topic, payload)
	}
}

// Close unsubscribes the handler.
func (s *Subscription) Close() error {
	var unsub bool
	q := s.queue
	q.subsLock.Lock()
	if lst := q.subs[s.pattern]; lst != nil {
		lst.Remove(s.elm)
		if unsub = lst.Len() == 0; unsub {
			delete(q.subs, s.pattern)
		}
	}
	q.subsLock.Unlock()
	if unsub && q.Client != nil {
		glog.V(2).Infof("UNSUB %q", q.TopicPrefix+s.pattern)
		return q.wait(q.Client.Unsubscribe(q.TopicPrefix + s.pattern))
	}
	return nil
}
