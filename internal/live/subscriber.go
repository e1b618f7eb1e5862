// Package live maintains the single push subscription that delivers chat
// messages in real time. One subscriber owns one connection; concurrent
// connections for the same view are a bug, not a mode.
package live

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aun009/resourcify/internal/domain"
	"github.com/aun009/resourcify/internal/session"
)

// Connection states. Transitions: DISCONNECTED → CONNECTING → CONNECTED,
// and back to DISCONNECTED on any error.
type State string

const (
	StateDisconnected State = "DISCONNECTED"
	StateConnecting   State = "CONNECTING"
	StateConnected    State = "CONNECTED"
)

const defaultRetryDelay = 5 * time.Second

var ErrNoIdentity = errors.New("live: no authenticated identity to subscribe with")

const eventTypeSubscribe = "topic.subscribe"

type subscribeEvent struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
}

// Subscriber dials the push endpoint, subscribes to the per-user topic and
// feeds every received message to the OnMessage callback. On any failure
// it retries after a fixed delay, indefinitely; there is intentionally no
// backoff and no retry cap.
type Subscriber struct {
	wsURL     string
	sess      *session.Session
	delay     time.Duration
	onMessage func(domain.Message)
	log       *zap.Logger

	mu      sync.Mutex
	state   State
	conn    *websocket.Conn
	retry   *time.Timer
	started bool
	closed  bool
}

func NewSubscriber(wsURL string, sess *session.Session, onMessage func(domain.Message), log *zap.Logger) *Subscriber {
	return &Subscriber{
		wsURL:     wsURL,
		sess:      sess,
		delay:     defaultRetryDelay,
		onMessage: onMessage,
		log:       log,
		state:     StateDisconnected,
	}
}

// SetRetryDelay overrides the fixed reconnect delay.
func (s *Subscriber) SetRetryDelay(d time.Duration) {
	if d > 0 {
		s.delay = d
	}
}

// Topic is the per-user topic keyed by the lower-cased email.
func (s *Subscriber) Topic() string {
	return fmt.Sprintf("user/%s/messages", domain.NormalizeEmail(s.sess.Email()))
}

func (s *Subscriber) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start begins connecting in the background. Calling it twice on the same
// subscriber is an error: the view owns exactly one live connection.
func (s *Subscriber) Start(ctx context.Context) error {
	if !s.sess.Valid() || s.sess.Email() == "" {
		return ErrNoIdentity
	}

	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return errors.New("live: subscriber already started")
	}
	s.started = true
	s.mu.Unlock()

	go s.connect(ctx)
	return nil
}

func (s *Subscriber) connect(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.state = StateConnecting
	s.mu.Unlock()

	dialURL := s.wsURL + "?token=" + url.QueryEscape(s.sess.Token())
	conn, _, err := websocket.Dial(ctx, dialURL, nil)
	if err != nil {
		s.log.Warn("live: dial failed", zap.Error(err))
		s.scheduleRetry(ctx)
		return
	}

	topic := s.Topic()
	if err := wsjson.Write(ctx, conn, subscribeEvent{Type: eventTypeSubscribe, Topic: topic}); err != nil {
		s.log.Warn("live: subscribe failed", zap.String("topic", topic), zap.Error(err))
		conn.Close(websocket.StatusInternalError, "subscribe failed")
		s.scheduleRetry(ctx)
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close(websocket.StatusNormalClosure, "")
		return
	}
	s.conn = conn
	s.state = StateConnected
	s.mu.Unlock()

	s.log.Info("live: subscribed", zap.String("topic", topic))
	s.readLoop(ctx, conn)
}

func (s *Subscriber) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var msg domain.Message
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			s.mu.Lock()
			closed := s.closed
			s.conn = nil
			s.mu.Unlock()
			if closed || ctx.Err() != nil {
				return
			}
			s.log.Warn("live: connection lost", zap.Error(err))
			s.scheduleRetry(ctx)
			return
		}
		s.onMessage(msg)
	}
}

// scheduleRetry arms the fixed-delay reconnect timer, unless the
// subscriber was closed in the meantime.
func (s *Subscriber) scheduleRetry(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateDisconnected
	if s.closed || ctx.Err() != nil {
		return
	}
	s.retry = time.AfterFunc(s.delay, func() { s.connect(ctx) })
}

// Close tears the subscription down deterministically: the connection is
// closed if one exists and any pending retry timer is cancelled. Safe to
// call more than once.
func (s *Subscriber) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.state = StateDisconnected
	if s.retry != nil {
		s.retry.Stop()
		s.retry = nil
	}
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	if conn != nil {
		conn.Close(websocket.StatusNormalClosure, "")
	}
}
