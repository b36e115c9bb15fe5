package schedulenotifications

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
	ScheduledIDs []reminder.ID
}

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

	notificationTime, err := s.settingsRepository.GetNotificationTime(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		notificationTime = reminder.DefaultNotificationTime
	}

	now := s.now()
	for _, rem := range reminders {
		notification, ok := reminder.PlanNotification(rem, notificationTime, now, s.notifyMissed)
		if !ok {
			continue
		}
		if err := s.scheduler.Schedule(ctx, notification); err != nil {
			// A failed request for one reminder must not abort the batch.
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
			continue
		}
		result.ScheduledIDs = append(result.ScheduledIDs, rem.ID)
	}

	s.log.Info(
		ctx,
		"Notification scheduling pass finished.",
		logging.Entry("reminderCount", len(reminders)),
		logging.Entry("scheduledCount", len(result.ScheduledIDs)),
	)
	return result, nil
}
