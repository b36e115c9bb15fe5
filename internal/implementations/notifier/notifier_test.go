package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	sendnotification "github.com/CarelessWhissper/expense-tracker/internal/core/services/send_notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureService struct {
	inputs chan sendnotification.Input
}

func newCaptureService() *captureService {
	return &captureService{inputs: make(chan sendnotification.Input, 10)}
}

func (s *captureService) Run(
	ctx context.Context,
	input sendnotification.Input,
) (result sendnotification.Result, err error) {
	s.inputs <- input
	result.Delivered = true
	return result, nil
}

func TestFiresWhenDelayElapsed(t *testing.T) {
	service := newCaptureService()
	now := time.Now()
	notifier := NewInProcess(logging.NewFakeLogger(), service, func() time.Time { return now })
	defer notifier.Close()

	notification := reminder.Notification{
		ReminderID: "reminder-1",
		DueAt:      now.Add(72 * time.Hour),
		FireAt:     now.Add(10 * time.Millisecond),
	}
	require.NoError(t, notifier.Schedule(context.Background(), notification))

	select {
	case input := <-service.inputs:
		assert.Equal(t, reminder.ID("reminder-1"), input.ReminderID)
		assert.True(t, input.DueAt.Equal(notification.DueAt))
		assert.True(t, input.FireAt.Equal(notification.FireAt))
	case <-time.After(2 * time.Second):
		t.Fatal("notification did not fire")
	}
}

func TestCancelStopsPendingTimer(t *testing.T) {
	service := newCaptureService()
	now := time.Now()
	notifier := NewInProcess(logging.NewFakeLogger(), service, func() time.Time { return now })
	defer notifier.Close()

	notification := reminder.Notification{
		ReminderID: "reminder-1",
		FireAt:     now.Add(50 * time.Millisecond),
	}
	require.NoError(t, notifier.Schedule(context.Background(), notification))
	require.NoError(t, notifier.Cancel(context.Background(), "reminder-1"))

	select {
	case <-service.inputs:
		t.Fatal("canceled notification must not fire")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestScheduleSupersedesPendingTimer(t *testing.T) {
	service := newCaptureService()
	now := time.Now()
	notifier := NewInProcess(logging.NewFakeLogger(), service, func() time.Time { return now })
	defer notifier.Close()

	first := reminder.Notification{
		ReminderID: "reminder-1",
		DueAt:      now.Add(24 * time.Hour),
		FireAt:     now.Add(50 * time.Millisecond),
	}
	second := reminder.Notification{
		ReminderID: "reminder-1",
		DueAt:      now.Add(48 * time.Hour),
		FireAt:     now.Add(10 * time.Millisecond),
	}
	require.NoError(t, notifier.Schedule(context.Background(), first))
	require.NoError(t, notifier.Schedule(context.Background(), second))

	select {
	case input := <-service.inputs:
		assert.True(t, input.DueAt.Equal(second.DueAt))
	case <-time.After(2 * time.Second):
		t.Fatal("notification did not fire")
	}

	select {
	case <-service.inputs:
		t.Fatal("superseded notification must not fire")
	case <-time.After(200 * time.Millisecond):
	}
}
