package consumers

import (
	"context"

	"github.com/CarelessWhissper/expense-tracker/internal/app/deps"
	"github.com/CarelessWhissper/expense-tracker/internal/app/services"
	dl "github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	notificationdue "github.com/CarelessWhissper/expense-tracker/internal/rabbitmq/consumers/notification_due"
)

func initNotificationDueConsumer(deps *deps.Deps, services *services.Services) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqNotificationDueQueue
	notificationDueConsumer := notificationdue.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		services.SendNotification,
	)
	if err = notificationDueConsumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

// InitConsumers is a no-op in test mode, where the in-process notifier fires
// notifications directly.
func InitConsumers(deps *deps.Deps, services *services.Services) func() {
	if deps.Rabbitmq == nil {
		return func() {}
	}

	shutdownNotificationDueConsumer := initNotificationDueConsumer(deps, services)

	return func() {
		shutdownNotificationDueConsumer()
	}
}
