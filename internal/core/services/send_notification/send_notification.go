package sendnotification

import (
	"context"
	"errors"
	"time"

	c "github.com/CarelessWhissper/expense-tracker/internal/core/domain/common"
	e "github.com/CarelessWhissper/expense-tracker/internal/core/domain/errors"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	"github.com/CarelessWhissper/expense-tracker/internal/core/services"
)

// Deliveries this late are dropped instead of surprising the user long
// after the fire time has passed.
const MAX_DELIVERY_DELAY = 24 * time.Hour

type Input struct {
	ReminderID reminder.ID
	DueAt      time.Time
	FireAt     time.Time
}

type Result struct {
	Delivered bool
}

// The service runs when a scheduled fire time arrives. Delivery requests are
// superseded rather than canceled in flight: the request carries the reminder
// id with snapshots of the due date and fire time it was computed from, and
// the current reminder state decides whether the request is still valid. A
// request whose snapshots no longer match the current state is stale and is
// dropped, and a due date that has already been delivered for is never
// delivered for again.
type service struct {
	log                logging.Logger
	reminderRepository reminder.Repository
	settingsRepository reminder.SettingsRepository
	sender             reminder.Sender
	now                func() time.Time
}

func New(
	log logging.Logger,
	reminderRepository reminder.Repository,
	settingsRepository reminder.SettingsRepository,
	sender reminder.Sender,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if settingsRepository == nil {
		panic(e.NewNilArgumentError("settingsRepository"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
		settingsRepository: settingsRepository,
		sender:             sender,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	rem, err := s.reminderRepository.GetByID(ctx, input.ReminderID)
	if err != nil {
		if errors.Is(err, reminder.ErrReminderDoesNotExist) {
			s.log.Info(
				ctx,
				"Reminder is gone, notification dropped.",
				logging.Entry("reminderID", input.ReminderID),
			)
			return result, nil
		}
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	if !rem.IsActive {
		s.log.Info(
			ctx,
			"Reminder is inactive, notification dropped.",
			logging.Entry("reminderID", rem.ID),
		)
		return result, nil
	}

	if s.now().Sub(input.FireAt) > MAX_DELIVERY_DELAY {
		s.log.Warning(
			ctx,
			"Delivery delay exceeded, notification dropped.",
			logging.Entry("reminderID", rem.ID),
			logging.Entry("fireAt", input.FireAt),
		)
		return result, nil
	}

	if !rem.NextDueAt.Equal(input.DueAt) {
		s.log.Info(
			ctx,
			"Notification request is stale, dropped.",
			logging.Entry("reminderID", rem.ID),
			logging.Entry("requestDueAt", input.DueAt),
			logging.Entry("currentDueAt", rem.NextDueAt),
		)
		return result, nil
	}

	if rem.NotifiedDueAt.IsPresent && rem.NotifiedDueAt.Value.Equal(rem.NextDueAt) {
		s.log.Info(
			ctx,
			"Notification for this due date was already delivered, dropped.",
			logging.Entry("reminderID", rem.ID),
			logging.Entry("dueAt", rem.NextDueAt),
		)
		return result, nil
	}

	// A later fire time computed from the current lead and time of day means
	// a replacement request is pending; this one was superseded.
	notificationTime, err := s.settingsRepository.GetNotificationTime(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
		notificationTime = reminder.DefaultNotificationTime
	}
	if expectedFireAt := rem.NotifyAt(notificationTime); expectedFireAt.After(input.FireAt) {
		s.log.Info(
			ctx,
			"Notification request was superseded, dropped.",
			logging.Entry("reminderID", rem.ID),
			logging.Entry("requestFireAt", input.FireAt),
			logging.Entry("currentFireAt", expectedFireAt),
		)
		return result, nil
	}

	if err := s.sender.Send(ctx, reminder.NewNotification(rem, input.FireAt)); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
		return result, err
	}

	// The delivery already happened, a failed stamp must not fail the run.
	if _, err := s.reminderRepository.Update(ctx, reminder.UpdateInput{
		ID:                    rem.ID,
		DoNotifiedDueAtUpdate: true,
		NotifiedDueAt:         c.NewOptional(rem.NextDueAt, true),
	}); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
	}

	s.log.Info(
		ctx,
		"Notification delivered.",
		logging.Entry("reminderID", rem.ID),
		logging.Entry("fireAt", input.FireAt),
	)
	result.Delivered = true
	return result, nil
}
