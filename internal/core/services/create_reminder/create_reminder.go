package createreminder

import (
	"context"
	"time"

	c "github.com/CarelessWhissper/expense-tracker/internal/core/domain/common"
	e "github.com/CarelessWhissper/expense-tracker/internal/core/domain/errors"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	"github.com/CarelessWhissper/expense-tracker/internal/core/services"
	"github.com/shopspring/decimal"
)

type Input struct {
	Type       reminder.Type
	Title      string
	Amount     c.Optional[decimal.Decimal]
	Category   c.Optional[string]
	Notes      c.Optional[string]
	Recurrence reminder.Recurrence
	NextDueAt  time.Time
	DaysBefore uint
}

func (i Input) Validate() error {
	if i.Title == "" {
		return reminder.ErrReminderTitleNotSet
	}
	if i.NextDueAt.IsZero() {
		return reminder.ErrReminderDueAtNotSet
	}
	if i.Amount.IsPresent && i.Amount.Value.IsNegative() {
		return reminder.ErrNegativeAmount
	}
	return i.Recurrence.Validate()
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
	if err := input.Validate(); err != nil {
		return result, err
	}

	createdReminder, err := s.reminderRepository.Create(ctx, reminder.CreateInput{
		Type:       input.Type,
		Title:      input.Title,
		Amount:     input.Amount,
		Category:   input.Category,
		Notes:      input.Notes,
		Recurrence: input.Recurrence,
		NextDueAt:  input.NextDueAt,
		DaysBefore: input.DaysBefore,
		IsActive:   true,
		CreatedAt:  s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	notificationTime, err := s.settingsRepository.GetNotificationTime(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", createdReminder.ID))
		notificationTime = reminder.DefaultNotificationTime
	}
	if notification, ok := reminder.PlanNotification(
		createdReminder,
		notificationTime,
		s.now(),
		s.notifyMissed,
	); ok {
		if err := s.scheduler.Schedule(ctx, notification); err != nil {
			// The reminder is created either way, a notification request
			// failure must not fail the operation.
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", createdReminder.ID))
		}
	}

	s.log.Info(
		ctx,
		"Reminder successfully created.",
		logging.Entry("reminderID", createdReminder.ID),
		logging.Entry("nextDueAt", createdReminder.NextDueAt),
	)
	result.Reminder = createdReminder
	return result, nil
}
