package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Env       string `env:"CARDQUEST_ENV" envDefault:"dev"`  // dev, staging, prod
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`     // debug, info, warn, error
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`    // json, text
	Port      int    `env:"PORT" envDefault:"8080"`

	DatabaseFile string `env:"CARDQUEST_DATABASE_FILE" envDefault:"cardquest.db"`
	QuestionsDir string `env:"CARDQUEST_QUESTIONS_DIR" envDefault:"questions"`

	// BotToken enables the Telegram bot. Without it only the HTTP API runs.
	BotToken       string `env:"CARDQUEST_BOT_TOKEN"`
	BotURL         string `env:"CARDQUEST_BOT_URL" envDefault:"https://t.me/cardquest_bot"`
	BotAPIEndpoint string `env:"CARDQUEST_BOT_API_ENDPOINT"`

	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`

	// A zero TTL keeps the corresponding state until it is used.
	RegistrationTTL time.Duration `env:"CARDQUEST_REGISTRATION_TTL" envDefault:"720h"`
	QuizInstanceTTL time.Duration `env:"CARDQUEST_QUIZ_INSTANCE_TTL" envDefault:"24h"`
	DialogueIdleTTL time.Duration `env:"CARDQUEST_DIALOGUE_IDLE_TTL" envDefault:"24h"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if c.DatabaseFile == "" {
		errs = append(errs, errors.New("CARDQUEST_DATABASE_FILE must not be empty"))
	}
	if c.QuestionsDir == "" {
		errs = append(errs, errors.New("CARDQUEST_QUESTIONS_DIR must not be empty"))
	}
	for name, d := range map[string]time.Duration{
		"SHUTDOWN_GRACE_PERIOD":       c.ShutdownGracePeriod,
		"HOUSEKEEPING_INTERVAL":       c.HousekeepingInterval,
		"CARDQUEST_REGISTRATION_TTL":  c.RegistrationTTL,
		"CARDQUEST_QUIZ_INSTANCE_TTL": c.QuizInstanceTTL,
		"CARDQUEST_DIALOGUE_IDLE_TTL": c.DialogueIdleTTL,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", name))
		}
	}
	return errors.Join(errs...)
}
