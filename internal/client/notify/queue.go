package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a notification for presentation purposes.
type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
	SeveritySuccess     Severity = "success"
)

// DefaultTTL is how long a notification stays active before expiring on its own.
const DefaultTTL = 3 * time.Second

// Notification is a transient user-facing message.
type Notification struct {
	ID        uuid.UUID
	Message   string
	Severity  Severity
	CreatedAt time.Time
}

// Queue holds active notifications and expires them after a fixed TTL.
// A notification can also be dismissed early by id.
type Queue struct {
	mu       sync.Mutex
	ttl      time.Duration
	active   map[uuid.UUID]Notification
	order    []uuid.UUID
	timers   map[uuid.UUID]*time.Timer
	onNotify func(Notification)
}

// Option configures a Queue.
type Option func(*Queue)

// WithTTL overrides the default notification lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(q *Queue) {
		if ttl > 0 {
			q.ttl = ttl
		}
	}
}

// WithCallback registers a function invoked for every new notification.
func WithCallback(fn func(Notification)) Option {
	return func(q *Queue) {
		q.onNotify = fn
	}
}

// NewQueue creates an empty notification queue.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		ttl:    DefaultTTL,
		active: make(map[uuid.UUID]Notification),
		timers: make(map[uuid.UUID]*time.Timer),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Notify enqueues a message and schedules its expiry.
func (q *Queue) Notify(message string, severity Severity) Notification {
	if severity == "" {
		severity = SeverityDefault
	}

	n := Notification{
		ID:        uuid.New(),
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
	}

	q.mu.Lock()
	q.active[n.ID] = n
	q.order = append(q.order, n.ID)
	q.timers[n.ID] = time.AfterFunc(q.ttl, func() {
		q.Dismiss(n.ID)
	})
	callback := q.onNotify
	q.mu.Unlock()

	if callback != nil {
		callback(n)
	}
	return n
}

// Dismiss removes a notification before its TTL elapses.
// Dismissing an unknown or already expired id is a no-op.
func (q *Queue) Dismiss(id uuid.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.active[id]; !ok {
		return
	}
	delete(q.active, id)
	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}
	for i, queued := range q.order {
		if queued == id {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
}

// Active returns the live notifications in insertion order.
func (q *Queue) Active() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Notification, 0, len(q.order))
	for _, id := range q.order {
		if n, ok := q.active[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Close stops all pending expiry timers and drops active notifications.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.active = make(map[uuid.UUID]Notification)
	q.order = nil
}
