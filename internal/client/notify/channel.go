package notify

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gophdiner/internal/logging"
)

// ChannelSink delivers notifications over a buffered channel. When the buffer
// is full or the sink is closed, the notification is dropped and counted.
type ChannelSink struct {
	ch  chan Notification
	log logging.Logger
	now func() time.Time

	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

var _ Notifier = (*ChannelSink)(nil)

func NewChannelSink(buffer int, logger logging.Logger) *ChannelSink {
	if buffer < 1 {
		buffer = 1
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &ChannelSink{
		ch:  make(chan Notification, buffer),
		log: logger.With("component", "notify"),
		now: time.Now,
	}
}

// Notifications is the receive side; it is closed by Close.
func (s *ChannelSink) Notifications() <-chan Notification {
	return s.ch
}

// Dropped is the number of notifications that could not be queued.
func (s *ChannelSink) Dropped() uint64 {
	return s.dropped.Load()
}

func (s *ChannelSink) Info(title, description string) {
	s.push(SeverityInfo, title, description)
}

func (s *ChannelSink) Success(title, description string) {
	s.push(SeveritySuccess, title, description)
}

func (s *ChannelSink) Error(title, description string) {
	s.push(SeverityError, title, description)
}

func (s *ChannelSink) push(sev Severity, title, description string) {
	n := Notification{Severity: sev, Title: title, Description: description, At: s.now()}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.dropped.Add(1)
		return
	}

	select {
	case s.ch <- n:
	default:
		s.dropped.Add(1)
		s.log.Warn(context.Background(), "notification dropped", "severity", sev, "title", title)
	}
}

// Close stops accepting notifications and closes the channel. Safe to call
// more than once.
func (s *ChannelSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
