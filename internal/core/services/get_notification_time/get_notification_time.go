package getnotificationtime

import (
	"context"

	e "github.com/CarelessWhissper/expense-tracker/internal/core/domain/errors"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	"github.com/CarelessWhissper/expense-tracker/internal/core/services"
)

type Input struct{}

type Result struct {
	NotificationTime reminder.TimeOfDay
}

type service struct {
	log                logging.Logger
	settingsRepository reminder.SettingsRepository
}

func New(
	log logging.Logger,
	settingsRepository reminder.SettingsRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if settingsRepository == nil {
		panic(e.NewNilArgumentError("settingsRepository"))
	}
	return &service{log: log, settingsRepository: settingsRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	notificationTime, err := s.settingsRepository.GetNotificationTime(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	result.NotificationTime = notificationTime
	return result, nil
}
