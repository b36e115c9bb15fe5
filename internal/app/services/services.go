package services

import (
	"github.com/CarelessWhissper/expense-tracker/internal/app/deps"
	"github.com/CarelessWhissper/expense-tracker/internal/core/services"
	createreminder "github.com/CarelessWhissper/expense-tracker/internal/core/services/create_reminder"
	deletereminder "github.com/CarelessWhissper/expense-tracker/internal/core/services/delete_reminder"
	getnotificationtime "github.com/CarelessWhissper/expense-tracker/internal/core/services/get_notification_time"
	listreminders "github.com/CarelessWhissper/expense-tracker/internal/core/services/list_reminders"
	markreminderpaid "github.com/CarelessWhissper/expense-tracker/internal/core/services/mark_reminder_paid"
	reconcilereminders "github.com/CarelessWhissper/expense-tracker/internal/core/services/reconcile_reminders"
	schedulenotifications "github.com/CarelessWhissper/expense-tracker/internal/core/services/schedule_notifications"
	sendnotification "github.com/CarelessWhissper/expense-tracker/internal/core/services/send_notification"
	setnotificationtime "github.com/CarelessWhissper/expense-tracker/internal/core/services/set_notification_time"
	setreminderactive "github.com/CarelessWhissper/expense-tracker/internal/core/services/set_reminder_active"
	updatereminder "github.com/CarelessWhissper/expense-tracker/internal/core/services/update_reminder"
)

type Services struct {
	CreateReminder    services.Service[createreminder.Input, createreminder.Result]
	ListReminders     services.Service[listreminders.Input, listreminders.Result]
	UpdateReminder    services.Service[updatereminder.Input, updatereminder.Result]
	DeleteReminder    services.Service[deletereminder.Input, deletereminder.Result]
	MarkReminderPaid  services.Service[markreminderpaid.Input, markreminderpaid.Result]
	SetReminderActive services.Service[setreminderactive.Input, setreminderactive.Result]

	GetNotificationTime services.Service[getnotificationtime.Input, getnotificationtime.Result]
	SetNotificationTime services.Service[setnotificationtime.Input, setnotificationtime.Result]

	ReconcileReminders    services.Service[reconcilereminders.Input, reconcilereminders.Result]
	ScheduleNotifications services.Service[schedulenotifications.Input, schedulenotifications.Result]
	SendNotification      services.Service[sendnotification.Input, sendnotification.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	notifyMissed := deps.Config.NotifyMissed

	s.CreateReminder = createreminder.New(
		deps.Logger,
		deps.ReminderRepository,
		deps.SettingsRepository,
		deps.NotificationScheduler,
		notifyMissed,
		deps.Now,
	)
	s.ListReminders = listreminders.New(deps.Logger, deps.ReminderRepository)
	s.UpdateReminder = updatereminder.New(
		deps.Logger,
		deps.ReminderRepository,
		deps.SettingsRepository,
		deps.NotificationScheduler,
		notifyMissed,
		deps.Now,
	)
	s.DeleteReminder = deletereminder.New(deps.Logger, deps.ReminderRepository, deps.NotificationScheduler)
	s.MarkReminderPaid = markreminderpaid.New(
		deps.Logger,
		deps.ReminderRepository,
		deps.SettingsRepository,
		deps.NotificationScheduler,
		notifyMissed,
		deps.Now,
	)
	s.SetReminderActive = setreminderactive.New(
		deps.Logger,
		deps.ReminderRepository,
		deps.SettingsRepository,
		deps.NotificationScheduler,
		notifyMissed,
		deps.Now,
	)

	s.ScheduleNotifications = schedulenotifications.New(
		deps.Logger,
		deps.ReminderRepository,
		deps.SettingsRepository,
		deps.NotificationScheduler,
		notifyMissed,
		deps.Now,
	)
	s.GetNotificationTime = getnotificationtime.New(deps.Logger, deps.SettingsRepository)
	s.SetNotificationTime = setnotificationtime.New(
		deps.Logger,
		deps.SettingsRepository,
		s.ScheduleNotifications,
	)

	s.ReconcileReminders = reconcilereminders.New(
		deps.Logger,
		deps.ReminderRepository,
		deps.SettingsRepository,
		deps.NotificationScheduler,
		notifyMissed,
		deps.Now,
	)
	s.SendNotification = sendnotification.New(
		deps.Logger,
		deps.ReminderRepository,
		deps.SettingsRepository,
		deps.NotificationSender,
		deps.Now,
	)

	return s
}
