package reconcilereminders

import (
	"context"
	"time"

	c "github.com/CarelessWhissper/expense-tracker/internal/core/domain/common"
	e "github.com/CarelessWhissper/expense-tracker/internal/core/domain/errors"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	"github.com/CarelessWhissper/expense-tracker/internal/core/services"
)

type Input struct{}

type Result struct {
	SettledIDs []reminder.ID
}

// The reconciliation pass settles reminders whose due date has arrived
// "today". Due dates in the past that were missed on earlier days are left
// untouched so they stay visibly overdue.
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
	reminders, err := s.reminderRepository.Read(ctx, reminder.ReadOptions{
		IsActiveEquals: c.NewOptional(true, true),
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	now := s.now()
	for _, rem := range reminders {
		if !rem.IsDueOn(now) {
			continue
		}
		// Settling is idempotent within a calendar day: a second pass on
		// the same day must not advance the reminder again.
		if rem.IsSettledOn(now) {
			continue
		}
		settled, err := s.settle(ctx, rem, now)
		if err != nil {
			// One broken reminder must not abort the whole pass.
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
			continue
		}
		result.SettledIDs = append(result.SettledIDs, settled.ID)
	}

	if len(result.SettledIDs) > 0 {
		s.log.Info(
			ctx,
			"Due reminders reconciled.",
			logging.Entry("settledCount", len(result.SettledIDs)),
			logging.Entry("settledIDs", result.SettledIDs),
		)
	}
	return result, nil
}

func (s *service) settle(
	ctx context.Context,
	rem reminder.Reminder,
	now time.Time,
) (settled reminder.Reminder, err error) {
	nextDueAt, err := rem.Recurrence.NextFrom(rem.NextDueAt)
	if err != nil {
		return settled, err
	}

	settled, err = s.reminderRepository.Update(ctx, reminder.UpdateInput{
		ID:                 rem.ID,
		DoNextDueAtUpdate:  true,
		NextDueAt:          nextDueAt,
		DoLastPaidAtUpdate: true,
		LastPaidAt:         c.NewOptional(now, true),
	})
	if err != nil {
		return settled, err
	}

	notificationTime, err := s.settingsRepository.GetNotificationTime(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", settled.ID))
		notificationTime = reminder.DefaultNotificationTime
	}
	if notification, ok := reminder.PlanNotification(settled, notificationTime, now, s.notifyMissed); ok {
		if err := s.scheduler.Schedule(ctx, notification); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", settled.ID))
		}
	}
	return settled, nil
}
