package updatereminder

import (
	"context"
	"errors"
	"time"

	c "github.com/CarelessWhissper/expense-tracker/internal/core/domain/common"
	e "github.com/CarelessWhissper/expense-tracker/internal/core/domain/errors"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	"github.com/CarelessWhissper/expense-tracker/internal/core/services"
	"github.com/shopspring/decimal"
)

type Input struct {
	ReminderID         reminder.ID
	DoTitleUpdate      bool
	Title              string
	DoAmountUpdate     bool
	Amount             c.Optional[decimal.Decimal]
	DoCategoryUpdate   bool
	Category           c.Optional[string]
	DoNotesUpdate      bool
	Notes              c.Optional[string]
	DoRecurrenceUpdate bool
	Recurrence         reminder.Recurrence
	DoNextDueAtUpdate  bool
	NextDueAt          time.Time
	DoDaysBeforeUpdate bool
	DaysBefore         uint
}

func (i Input) Validate() error {
	if i.DoTitleUpdate && i.Title == "" {
		return reminder.ErrReminderTitleNotSet
	}
	if i.DoNextDueAtUpdate && i.NextDueAt.IsZero() {
		return reminder.ErrReminderDueAtNotSet
	}
	if i.DoAmountUpdate && i.Amount.IsPresent && i.Amount.Value.IsNegative() {
		return reminder.ErrNegativeAmount
	}
	if i.DoRecurrenceUpdate {
		return i.Recurrence.Validate()
	}
	return nil
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

	updatedReminder, err := s.reminderRepository.Update(ctx, reminder.UpdateInput{
		ID:                 input.ReminderID,
		DoTitleUpdate:      input.DoTitleUpdate,
		Title:              input.Title,
		DoAmountUpdate:     input.DoAmountUpdate,
		Amount:             input.Amount,
		DoCategoryUpdate:   input.DoCategoryUpdate,
		Category:           input.Category,
		DoNotesUpdate:      input.DoNotesUpdate,
		Notes:              input.Notes,
		DoRecurrenceUpdate: input.DoRecurrenceUpdate,
		Recurrence:         input.Recurrence,
		DoNextDueAtUpdate:  input.DoNextDueAtUpdate,
		NextDueAt:          input.NextDueAt,
		DoDaysBeforeUpdate: input.DoDaysBeforeUpdate,
		DaysBefore:         input.DaysBefore,
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

	// The due date or lead time may have changed, the pending notification
	// request for this id has to be superseded.
	if input.DoNextDueAtUpdate || input.DoDaysBeforeUpdate {
		s.reschedule(ctx, updatedReminder)
	}

	s.log.Info(
		ctx,
		"Reminder successfully updated.",
		logging.Entry("reminderID", updatedReminder.ID),
	)
	result.Reminder = updatedReminder
	return result, nil
}

func (s *service) reschedule(ctx context.Context, rem reminder.Reminder) {
	notificationTime, err := s.settingsRepository.GetNotificationTime(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
		notificationTime = reminder.DefaultNotificationTime
	}
	notification, ok := reminder.PlanNotification(rem, notificationTime, s.now(), s.notifyMissed)
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
