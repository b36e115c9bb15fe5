package deletereminder

import (
	"context"
	"errors"

	e "github.com/CarelessWhissper/expense-tracker/internal/core/domain/errors"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	"github.com/CarelessWhissper/expense-tracker/internal/core/services"
)

type Input struct {
	ReminderID reminder.ID
}

type Result struct{}

type service struct {
	log                logging.Logger
	reminderRepository reminder.Repository
	scheduler          reminder.NotificationScheduler
}

func New(
	log logging.Logger,
	reminderRepository reminder.Repository,
	scheduler reminder.NotificationScheduler,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
		scheduler:          scheduler,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := s.reminderRepository.Delete(ctx, input.ReminderID); err != nil {
		switch {
		case errors.Is(err, reminder.ErrReminderDoesNotExist):
			s.log.Info(ctx, "Reminder not found.", logging.Entry("input", input))
		default:
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	if err := s.scheduler.Cancel(ctx, input.ReminderID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", input.ReminderID))
	}

	s.log.Info(ctx, "Reminder deleted.", logging.Entry("reminderID", input.ReminderID))
	return result, nil
}
