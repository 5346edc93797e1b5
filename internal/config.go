package internal

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Host              string        `env:"HOST,default=0.0.0.0"`
	Port              int           `env:"PORT,default=5555" validate:"gte=1,lte=65535"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	HistoryLimit      int           `env:"HISTORY_LIMIT,default=50" validate:"gt=0"`
	CommandBufferSize int           `env:"COMMAND_BUFFER_SIZE,default=256" validate:"gte=0"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	MetricInterval    time.Duration `env:"METRIC_INTERVAL,default=30s"`
	CharReplacement   string        `env:"MODERATION_CHARACTER_REPLACEMENT,default=*"`
	DebugPort         int           `env:"DEBUG_PORT,default=0" validate:"gte=0,lte=65535"`
}

func (c Config) Validate() error {
	return validator.New().Struct(c)
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ReplacementRune enforces that the moderation replacement is one character.
func (c Config) ReplacementRune() (rune, error) {
	r := []rune(c.CharReplacement)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"MODERATION_CHARACTER_REPLACEMENT must be a single character, got %q",
			c.CharReplacement,
		)
	}
	return r[0], nil
}
