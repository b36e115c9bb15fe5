package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"

	e "github.com/CarelessWhissper/expense-tracker/internal/core/domain/errors"
)

type Config struct {
	IsTestMode bool `env:"TEST_MODE" envDefault:"false"`

	HTTPAddress       string `env:"HTTP_ADDRESS" envDefault:"0.0.0.0:8080"`
	HTTPAllowedOrigin string `env:"HTTP_ALLOWED_ORIGIN" envDefault:"*"`

	RedisURL       string `env:"REDIS_URL,required"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"expense-tracker"`

	RabbitmqURL                  string `env:"RABBITMQ_URL"`
	RabbitmqDelayedExchange      string `env:"RABBITMQ_DELAYED_EXCHANGE" envDefault:"expense-tracker-delayed"`
	RabbitmqNotificationDueQueue string `env:"RABBITMQ_NOTIFICATION_DUE_QUEUE" envDefault:"notification-due"`

	ReconcileEvery time.Duration `env:"RECONCILE_EVERY" envDefault:"1h"`
	NotifyMissed   bool          `env:"NOTIFY_MISSED" envDefault:"false"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if !config.IsTestMode && config.RabbitmqURL == "" {
		return nil, e.NewInvalidConfigurationError("RABBITMQ_URL must be set")
	}
	return config, nil
}
