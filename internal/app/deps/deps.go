package deps

import (
	"context"
	"sync"
	"time"

	"github.com/CarelessWhissper/expense-tracker/internal/config"
	dl "github.com/CarelessWhissper/expense-tracker/internal/core/domain/logging"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	sendnotification "github.com/CarelessWhissper/expense-tracker/internal/core/services/send_notification"
	dbreminder "github.com/CarelessWhissper/expense-tracker/internal/db/reminder"
	implidentity "github.com/CarelessWhissper/expense-tracker/internal/implementations/identity"
	implkeyvalue "github.com/CarelessWhissper/expense-tracker/internal/implementations/keyvalue"
	"github.com/CarelessWhissper/expense-tracker/internal/implementations/logging"
	"github.com/CarelessWhissper/expense-tracker/internal/implementations/notifier"
	notificationsender "github.com/CarelessWhissper/expense-tracker/internal/implementations/notification_sender"
	"github.com/CarelessWhissper/expense-tracker/internal/rabbitmq"
	notificationscheduler "github.com/CarelessWhissper/expense-tracker/internal/rabbitmq/publishers/notification_scheduler"

	"github.com/go-redis/redis/v9"
	"github.com/r3labs/sse/v2"
	"github.com/rabbitmq/amqp091-go"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	Redis     *redis.Client
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server

	Now func() time.Time

	Store              *dbreminder.Store
	ReminderRepository reminder.Repository
	SettingsRepository reminder.SettingsRepository

	NotificationSender    reminder.Sender
	NotificationScheduler reminder.NotificationScheduler
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	closeRedisClient := deps.initRedisClient()
	closeSseServer := deps.initSseServer()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.Store = dbreminder.NewStore(
		deps.Logger,
		implkeyvalue.NewRedis(deps.Redis, deps.Config.RedisKeyPrefix),
		implidentity.NewUUID(),
	)
	deps.Store.Load(context.Background())
	deps.ReminderRepository = deps.Store
	deps.SettingsRepository = deps.Store

	deps.NotificationSender = notificationsender.NewSSE(deps.Logger, deps.SseServer)

	closeNotificationScheduler := deps.initNotificationScheduler()

	return deps, func() {
		closeFuncs := []func(){
			closeSseServer,
			closeNotificationScheduler,
			closeRedisClient,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

// In test mode notifications fire from in-process timers. Otherwise they go
// through a RabbitMQ delayed-message exchange, which survives restarts of
// this process.
func (deps *Deps) initNotificationScheduler() func() {
	if deps.Config.IsTestMode {
		inProcess := notifier.NewInProcess(
			deps.Logger,
			sendnotification.New(deps.Logger, deps.Store, deps.Store, deps.NotificationSender, deps.Now),
			deps.Now,
		)
		deps.NotificationScheduler = inProcess
		return func() {
			deps.Logger.Info(context.Background(), "Shutting down in-process notifier.")
			inProcess.Close()
			deps.Logger.Info(context.Background(), "In-process notifier shut down.")
		}
	}

	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection

	rabbitmqChannel, err := rabbitmqConnection.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	err = rabbitmqChannel.ExchangeDeclare(
		deps.Config.RabbitmqDelayedExchange,
		"x-delayed-message",
		true,
		false,
		false,
		false,
		amqp091.Table{"x-delayed-type": "direct"},
	)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ exchange.", dl.Entry("err", err))
		panic(err)
	}
	_, err = rabbitmqChannel.QueueDeclare(deps.Config.RabbitmqNotificationDueQueue, true, false, false, false, nil)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}
	if err := rabbitmqChannel.QueueBind(
		deps.Config.RabbitmqNotificationDueQueue,
		deps.Config.RabbitmqNotificationDueQueue,
		deps.Config.RabbitmqDelayedExchange,
		false,
		nil,
	); err != nil {
		deps.Logger.Error(context.Background(), "Could not bind queue to RabbitMQ exchange.", dl.Entry("err", err))
		panic(err)
	}

	deps.NotificationScheduler = notificationscheduler.NewRabbitMQ(
		deps.Logger,
		rabbitmqChannel,
		deps.Config.RabbitmqDelayedExchange,
		deps.Config.RabbitmqNotificationDueQueue,
		deps.Now,
	)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down notification scheduler.")
		rabbitmqChannel.Close()
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "Notification scheduler shut down.")
	}
}
