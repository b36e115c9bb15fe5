package notificationsender

import (
	"context"
	"encoding/json"
	"time"

	e "github.com/CarelessWhissper/expense-tracker/internal/core/domain/errors"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"

	"github.com/r3labs/sse/v2"
)

// StreamID is the SSE stream notification events are published to.
const StreamID = "notifications"

type notificationEvent struct {
	ReminderID string    `json:"reminder_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	DueAt      time.Time `json:"due_at"`
	FireAt     time.Time `json:"fire_at"`
}

// SSESender pushes notifications to connected clients as server-sent events.
type SSESender struct {
	log       logging.Logger
	sseServer *sse.Server
}

func NewSSE(log logging.Logger, sseServer *sse.Server) *SSESender {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	return &SSESender{log: log, sseServer: sseServer}
}

func (s *SSESender) Send(ctx context.Context, notification reminder.Notification) error {
	data, err := json.Marshal(notificationEvent{
		ReminderID: string(notification.ReminderID),
		Title:      notification.Title,
		Body:       notification.Body,
		DueAt:      notification.DueAt,
		FireAt:     notification.FireAt,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("notification", notification))
		return err
	}

	s.sseServer.Publish(StreamID, &sse.Event{
		Event: []byte("notification"),
		Data:  data,
	})
	s.log.Info(
		ctx,
		"Notification published to SSE stream.",
		logging.Entry("reminderID", notification.ReminderID),
	)
	return nil
}
