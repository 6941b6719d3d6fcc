// Package notify carries transient, dismissible user notifications.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return "info"
}

type Notification struct {
	ID      string
	Level   Level
	Message string
	Link    string // optional follow-up URL, e.g. a WhatsApp share link
	At      time.Time
}

func Info(msg string) Notification    { return Notification{Level: LevelInfo, Message: msg} }
func Success(msg string) Notification { return Notification{Level: LevelSuccess, Message: msg} }
func Warning(msg string) Notification { return Notification{Level: LevelWarning, Message: msg} }
func Failure(msg string) Notification { return Notification{Level: LevelError, Message: msg} }

// Notifier receives notifications.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Queue keeps notifications until they are drained or dismissed. Once full,
// the oldest entry is dropped.
type Queue struct {
	mu    sync.Mutex
	items []Notification
	limit int
	now   func() time.Time
}

// NewQueue creates a queue holding at most limit entries; limit <= 0 means 50.
func NewQueue(limit int) *Queue {
	if limit <= 0 {
		limit = 50
	}
	return &Queue{limit: limit, now: time.Now}
}

// Notify stores n, stamping an ID and time when missing.
func (q *Queue) Notify(n Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if n.At.IsZero() {
		n.At = q.now()
	}
	q.items = append(q.items, n)
	if over := len(q.items) - q.limit; over > 0 {
		q.items = append([]Notification(nil), q.items[over:]...)
	}
}

// Pending returns the stored notifications, oldest first.
func (q *Queue) Pending() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Notification(nil), q.items...)
}

// Drain returns and removes every stored notification.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

// Dismiss removes the notification with the given id.
func (q *Queue) Dismiss(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}
