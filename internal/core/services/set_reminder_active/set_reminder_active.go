package setreminderactive

import (
	"context"
	"errors"
	"time"

	e "github.com/CarelessWhissper/expense-tracker/internal/core/domain/errors"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	"github.com/CarelessWhissper/expense-tracker/internal/core/services"
)

type Input struct {
	ReminderID reminder.ID
	IsActive   bool
}

type Result struct {
	Reminder reminder.Reminder
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
	updatedReminder, err := s.reminderRepository.Update(ctx, reminder.UpdateInput{
		ID:               input.ReminderID,
		DoIsActiveUpdate: true,
		IsActive:         input.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrReminderDoesNotExist):
			s.log.Info(ctx, "Reminder not found.", logging.Entry("input", input))
		default:
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	if input.IsActive {
		s.schedule(ctx, updatedReminder)
	} else if err := s.scheduler.Cancel(ctx, updatedReminder.ID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", updatedReminder.ID))
	}

	s.log.Info(
		ctx,
		"Reminder activity changed.",
		logging.Entry("reminderID", updatedReminder.ID),
		logging.Entry("isActive", updatedReminder.IsActive),
	)
	result.Reminder = updatedReminder
	return result, nil
}

func (s *service) schedule(ctx context.Context, rem reminder.Reminder) {
	notificationTime, err := s.settingsRepository.GetNotificationTime(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
		notificationTime = reminder.DefaultNotificationTime
	}
	if notification, ok := reminder.PlanNotification(rem, notificationTime, s.now(), s.notifyMissed); ok {
		if err := s.scheduler.Schedule(ctx, notification); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
		}
	}
}
