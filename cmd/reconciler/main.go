package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CarelessWhissper/expense-tracker/internal/app/deps"
	"github.com/CarelessWhissper/expense-tracker/internal/app/services"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	reconcilereminders "github.com/CarelessWhissper/expense-tracker/internal/core/services/reconcile_reminders"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)

	ticker := time.NewTicker(deps.Config.ReconcileEvery)
	defer ticker.Stop()

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(
		context.Background(),
		"Starting periodic reminder reconciler.",
		logging.Entry("periodMinutes", deps.Config.ReconcileEvery.Minutes()),
	)

loop:
	for {
		select {
		case <-stopCh:
			log.Info(context.Background(), "Stopping periodic reminder reconciler.")
			break loop
		case <-ticker.C:
			log.Info(context.Background(), "Launching reconciliation service.")
			result, err := services.ReconcileReminders.Run(context.Background(), reconcilereminders.Input{})
			if err != nil {
				log.Error(context.Background(), "Reconciliation service returned an error.", logging.Entry("err", err))
				continue
			}
			log.Info(
				context.Background(),
				"Reconciliation pass finished.",
				logging.Entry("settledCount", len(result.SettledIDs)),
			)
		}
	}
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
