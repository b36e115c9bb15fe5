package setnotificationtime

import (
	"context"

	e "github.com/CarelessWhissper/expense-tracker/internal/core/domain/errors"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	"github.com/CarelessWhissper/expense-tracker/internal/core/services"
	schedulenotifications "github.com/CarelessWhissper/expense-tracker/internal/core/services/schedule_notifications"
)

type Input struct {
	NotificationTime reminder.TimeOfDay
}

type Result struct{}

// Changing the notification time invalidates every pending fire time, so the
// service re-runs the scheduling pass over all active reminders.
type service struct {
	log                logging.Logger
	settingsRepository reminder.SettingsRepository
	scheduleService    services.Service[schedulenotifications.Input, schedulenotifications.Result]
}

func New(
	log logging.Logger,
	settingsRepository reminder.SettingsRepository,
	scheduleService services.Service[schedulenotifications.Input, schedulenotifications.Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if settingsRepository == nil {
		panic(e.NewNilArgumentError("settingsRepository"))
	}
	if scheduleService == nil {
		panic(e.NewNilArgumentError("scheduleService"))
	}
	return &service{
		log:                log,
		settingsRepository: settingsRepository,
		scheduleService:    scheduleService,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := s.settingsRepository.SetNotificationTime(ctx, input.NotificationTime); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	if _, err := s.scheduleService.Run(ctx, schedulenotifications.Input{}); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"Notification time updated.",
		logging.Entry("notificationTime", input.NotificationTime.String()),
	)
	return result, nil
}
