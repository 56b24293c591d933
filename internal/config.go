package internal

import (
	"cosmokit/errors"
	"fmt"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StoreMemory = "memory"
	StoreBadger = "badger"

	NotifierLog   = "log"
	NotifierRedis = "redis"
)

type Config struct {
	LogLevel              string `env:"LOG_LEVEL,default=INFO" validate:"required"`
	Store                 string `env:"STORE,default=memory" validate:"oneof=memory badger"`
	BadgerFilepath        string `env:"BADGER_FILEPATH" validate:"required_if=Store badger"`
	MaxDispatchedMessages int    `env:"MAX_DISPATCHED_MESSAGES,default=1000" validate:"gte=0"`
	RecoverHandlerPanics  bool   `env:"RECOVER_HANDLER_PANICS,default=true"`
	Notifier              string `env:"NOTIFIER,default=log" validate:"oneof=log redis"`
	RedisAddr             string `env:"REDIS_ADDR" validate:"required_if=Notifier redis"`
	UnreachableOffices    string `env:"UNREACHABLE_OFFICES"`
}

// Load reads an optional .env file, then the environment.
func Load(filenames ...string) (Config, error) {
	_ = godotenv.Load(filenames...)
	return FromEnviron()
}

func FromEnviron() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}
	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}
	return config, nil
}
