package notificationscheduler

import (
	"context"
	"time"

	e "github.com/CarelessWhissper/expense-tracker/internal/core/domain/errors"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	"github.com/CarelessWhissper/expense-tracker/internal/rabbitmq"
	"github.com/CarelessWhissper/expense-tracker/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// RabbitMQ schedules notifications by publishing delayed messages to a
// delayed-message exchange. Cancel is a no-op: a stale delivery is detected
// and dropped on the consuming side, because the message snapshot no longer
// matches the reminder's current state.
type RabbitMQ struct {
	log        logging.Logger
	channel    *rabbitmq.Channel
	exchange   string
	routingKey string
	now        func() time.Time
}

func NewRabbitMQ(
	log logging.Logger,
	channel *rabbitmq.Channel,
	exchange string,
	routingKey string,
	now func() time.Time,
) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange, routingKey: routingKey, now: now}
}

func (s *RabbitMQ) Schedule(ctx context.Context, notification reminder.Notification) error {
	message := schema.Notification{
		ReminderID: string(notification.ReminderID),
		DueAt:      notification.DueAt,
		FireAt:     notification.FireAt,
	}
	body, err := message.Marshal()
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("notification", notification))
		return err
	}

	delay := notification.FireAt.Sub(s.now()).Milliseconds()
	if delay < 0 {
		delay = 0
	}
	err = s.channel.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp091.Publishing{
		Headers:     amqp091.Table{"x-delay": delay},
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return err
	}
	s.log.Info(
		ctx,
		"Notification message has been successfully published.",
		logging.Entry("exchange", s.exchange),
		logging.Entry("RK", s.routingKey),
		logging.Entry("reminderID", notification.ReminderID),
		logging.Entry("delayMs", delay),
	)
	return nil
}

func (s *RabbitMQ) Cancel(ctx context.Context, id reminder.ID) error {
	s.log.Debug(
		ctx,
		"Published notification will be dropped by the consumer staleness check.",
		logging.Entry("reminderID", id),
	)
	return nil
}
