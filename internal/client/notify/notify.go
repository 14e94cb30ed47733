// Package notify is the client's user-facing feedback channel. Components push
// notifications and move on: delivery is best-effort, sends never block, and
// nothing in the core waits for a notification to be shown.
package notify

import "time"

// Severity of a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is one toast-style message. Description may be empty.
type Notification struct {
	Severity    Severity
	Title       string
	Description string
	At          time.Time
}

// Notifier accepts fire-and-forget notifications. Implementations must not
// block or panic.
type Notifier interface {
	Info(title, description string)
	Success(title, description string)
	Error(title, description string)
}

// Discard is a Notifier that drops everything.
type Discard struct{}

func (Discard) Info(string, string)    {}
func (Discard) Success(string, string) {}
func (Discard) Error(string, string)   {}
