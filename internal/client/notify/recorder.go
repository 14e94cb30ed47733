package notify

import (
	"sync"
	"time"
)

// Recorder keeps every notification in memory, in call order.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

var _ Notifier = (*Recorder)(nil)

func (r *Recorder) Info(title, description string) {
	r.add(SeverityInfo, title, description)
}

func (r *Recorder) Success(title, description string) {
	r.add(SeveritySuccess, title, description)
}

func (r *Recorder) Error(title, description string) {
	r.add(SeverityError, title, description)
}

func (r *Recorder) add(sev Severity, title, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Severity: sev, Title: title, Description: description, At: time.Now()})
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Count returns how many notifications of the given severity were recorded.
func (r *Recorder) Count(sev Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, it := range r.items {
		if it.Severity == sev {
			n++
		}
	}
	return n
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
