package reminder

import (
	"context"
	"time"
)

// Notification is a one-shot delivery request for a reminder. ReminderID is
// the correlation id: scheduling a notification for an id supersedes any
// pending request for the same id.
// DueAt snapshots the due date the request was computed from, so a delivery
// arriving after the reminder advanced can be recognized as stale.
type Notification struct {
	ReminderID ID
	Title      string
	Body       string
	DueAt      time.Time
	FireAt     time.Time
}

func NewNotification(r Reminder, fireAt time.Time) Notification {
	return Notification{
		ReminderID: r.ID,
		Title:      r.Title,
		Body:       r.Type.NotificationBody(),
		DueAt:      r.NextDueAt,
		FireAt:     fireAt,
	}
}

// PlanNotification decides whether a notification should be requested for
// the reminder and at what instant. Fire times strictly in the past are
// skipped, unless notifyMissed is set, in which case the notification is
// planned for immediate delivery.
func PlanNotification(r Reminder, at TimeOfDay, now time.Time, notifyMissed bool) (n Notification, ok bool) {
	if !r.IsActive {
		return n, false
	}
	fireAt := r.NotifyAt(at)
	if fireAt.Before(now) {
		if !notifyMissed {
			return n, false
		}
		fireAt = now
	}
	return NewNotification(r, fireAt), true
}

type NotificationScheduler interface {
	Schedule(ctx context.Context, notification Notification) error
	Cancel(ctx context.Context, id ID) error
}

// Sender delivers a due notification. The scheduling core never delivers
// anything itself.
type Sender interface {
	Send(ctx context.Context, notification Notification) error
}
