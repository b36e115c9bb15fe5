package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CarelessWhissper/expense-tracker/internal/app"
	"github.com/CarelessWhissper/expense-tracker/internal/app/consumers"
	"github.com/CarelessWhissper/expense-tracker/internal/app/deps"
	"github.com/CarelessWhissper/expense-tracker/internal/app/services"
	dl "github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	reconcilereminders "github.com/CarelessWhissper/expense-tracker/internal/core/services/reconcile_reminders"
	schedulenotifications "github.com/CarelessWhissper/expense-tracker/internal/core/services/schedule_notifications"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)

	startupPass(deps, services)

	shutdownConsumers := consumers.InitConsumers(deps, services)

	httpServer := app.InitHttpServer(deps, services)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	shutdown(context.Background(), httpServer, deps, func() {
		shutdownConsumers()
		shutdownDeps()
	})
}

// startupPass settles anything that came due while the process was down and
// rebuilds the pending notification schedule.
func startupPass(deps *deps.Deps, services *services.Services) {
	ctx := context.Background()

	reconcileResult, err := services.ReconcileReminders.Run(ctx, reconcilereminders.Input{})
	if err != nil {
		deps.Logger.Error(ctx, "Startup reconciliation failed.", dl.Entry("err", err))
	} else {
		deps.Logger.Info(
			ctx,
			"Startup reconciliation finished.",
			dl.Entry("settledCount", len(reconcileResult.SettledIDs)),
		)
	}

	scheduleResult, err := services.ScheduleNotifications.Run(ctx, schedulenotifications.Input{})
	if err != nil {
		deps.Logger.Error(ctx, "Startup notification scheduling failed.", dl.Entry("err", err))
	} else {
		deps.Logger.Info(
			ctx,
			"Startup notification scheduling finished.",
			dl.Entry("scheduledCount", len(scheduleResult.ScheduledIDs)),
		)
	}
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("isTestMode", deps.Config.IsTestMode),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func shutdown(ctx context.Context, server *http.Server, deps *deps.Deps, shutdownRest func()) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}

	shutdownRest()
	deps.Logger.Info(ctx, "HTTP server has shutdowned.")
}
