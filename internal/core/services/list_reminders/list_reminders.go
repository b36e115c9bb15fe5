package listreminders

import (
	"context"

	c "github.com/CarelessWhissper/expense-tracker/internal/core/domain/common"
	e "github.com/CarelessWhissper/expense-tracker/internal/core/domain/errors"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	"github.com/CarelessWhissper/expense-tracker/internal/core/services"
)

type Input struct {
	IsActiveEquals c.Optional[bool]
	TypeEquals     c.Optional[reminder.Type]
	OrderBy        reminder.OrderBy
}

type Result struct {
	Reminders []reminder.Reminder
}

type service struct {
	log                logging.Logger
	reminderRepository reminder.Repository
}

func New(
	log logging.Logger,
	reminderRepository reminder.Repository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	return &service{log: log, reminderRepository: reminderRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	reminders, err := s.reminderRepository.Read(ctx, reminder.ReadOptions{
		IsActiveEquals: input.IsActiveEquals,
		TypeEquals:     input.TypeEquals,
		OrderBy:        input.OrderBy,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	result.Reminders = reminders
	return result, nil
}
