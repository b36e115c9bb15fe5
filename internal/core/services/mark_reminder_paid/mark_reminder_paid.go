package markreminderpaid

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

type Input struct {
	ReminderID reminder.ID
}

type Result struct {
	Reminder reminder.Reminder
}

// The service settles a reminder in place: the same record keeps its id and
// gets its due date advanced by the recurrence rule. No successor record is
// created.
type service struct {
	log                logging.Logger
	reminderRepository reminder.Repository
	settingsRepository reminder.SettingsRepository
	scheduler          reminder.NotificationScheduler
	notifyMissed       bool
	now                func() time.Time
}

func New(
	log logging.Logger,
	reminderRepository reminder.Repository,
	settingsRepository reminder.SettingsRepository,
	scheduler reminder.NotificationScheduler,
	notifyMissed bool,
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
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
		settingsRepository: settingsRepository,
		scheduler:          scheduler,
		notifyMissed:       notifyMissed,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	rem, err := s.reminderRepository.GetByID(ctx, input.ReminderID)
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrReminderDoesNotExist):
			s.log.Info(ctx, "Reminder not found.", logging.Entry("input", input))
		default:
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	nextDueAt, err := rem.Recurrence.NextFrom(rem.NextDueAt)
	if err != nil {
		s.log.Warning(
			ctx,
			"Reminder recurrence is misconfigured, reminder left unchanged.",
			logging.Entry("reminderID", rem.ID),
			logging.Entry("recurrence", rem.Recurrence),
			logging.Entry("err", err),
		)
		return result, err
	}

	now := s.now()
	updatedReminder, err := s.reminderRepository.Update(ctx, reminder.UpdateInput{
		ID:                 rem.ID,
		DoNextDueAtUpdate:  true,
		NextDueAt:          nextDueAt,
		DoLastPaidAtUpdate: true,
		LastPaidAt:         c.NewOptional(now, true),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.reschedule(ctx, updatedReminder, now)

	s.log.Info(
		ctx,
		"Reminder marked as paid.",
		logging.Entry("reminderID", updatedReminder.ID),
		logging.Entry("nextDueAt", updatedReminder.NextDueAt),
	)
	result.Reminder = updatedReminder
	return result, nil
}

func (s *service) reschedule(ctx context.Context, rem reminder.Reminder, now time.Time) {
	notificationTime, err := s.settingsRepository.GetNotificationTime(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
		notificationTime = reminder.DefaultNotificationTime
	}
	notification, ok := reminder.PlanNotification(rem, notificationTime, now, s.notifyMissed)
	if !ok {
		if err := s.scheduler.Cancel(ctx, rem.ID); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
		}
		return
	}
	if err := s.scheduler.Schedule(ctx, notification); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
	}
}
