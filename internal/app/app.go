package app

import (
	"net/http"

	"github.com/CarelessWhissper/expense-tracker/internal/app/deps"
	"github.com/CarelessWhissper/expense-tracker/internal/app/services"
	createreminder "github.com/CarelessWhissper/expense-tracker/internal/http/handlers/reminders/create_reminder"
	deletereminder "github.com/CarelessWhissper/expense-tracker/internal/http/handlers/reminders/delete_reminder"
	listreminders "github.com/CarelessWhissper/expense-tracker/internal/http/handlers/reminders/list_reminders"
	markreminderpaid "github.com/CarelessWhissper/expense-tracker/internal/http/handlers/reminders/mark_reminder_paid"
	setreminderactive "github.com/CarelessWhissper/expense-tracker/internal/http/handlers/reminders/set_reminder_active"
	updatereminder "github.com/CarelessWhissper/expense-tracker/internal/http/handlers/reminders/update_reminder"
	getnotificationtime "github.com/CarelessWhissper/expense-tracker/internal/http/handlers/settings/get_notification_time"
	setnotificationtime "github.com/CarelessWhissper/expense-tracker/internal/http/handlers/settings/set_notification_time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	reminderRouter := chi.NewRouter()
	reminderRouter.Method(http.MethodPost, "/", createreminder.New(s.CreateReminder))
	reminderRouter.Method(http.MethodGet, "/", listreminders.New(s.ListReminders))
	reminderRouter.Method(http.MethodPatch, "/{reminderID}", updatereminder.New(s.UpdateReminder))
	reminderRouter.Method(http.MethodDelete, "/{reminderID}", deletereminder.New(s.DeleteReminder))
	reminderRouter.Method(http.MethodPost, "/{reminderID}/paid", markreminderpaid.New(s.MarkReminderPaid))
	reminderRouter.Method(http.MethodPut, "/{reminderID}/active", setreminderactive.New(s.SetReminderActive))

	settingsRouter := chi.NewRouter()
	settingsRouter.Method(http.MethodGet, "/notification_time", getnotificationtime.New(s.GetNotificationTime))
	settingsRouter.Method(http.MethodPut, "/notification_time", setnotificationtime.New(s.SetNotificationTime))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.Config.HTTPAllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/reminders", reminderRouter)
	router.Mount("/settings", settingsRouter)
	router.Get("/events", deps.SseServer.ServeHTTP)

	// No write timeout, the /events stream holds its connection open.
	return &http.Server{
		Handler: router,
		Addr:    deps.Config.HTTPAddress,
	}
}
