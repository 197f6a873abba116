package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains application configuration parameters.
type Config struct {
	LogLevel int    `env:"LOG_LEVEL" envDefault:"0"`
	Delays   Delays `envPrefix:"DELAY_"`
	Seed     Seed   `envPrefix:"SEED_"`
	CLI      CLI    `envPrefix:"CLI_"`
}

// Delays contains the simulated latency of each workflow.
type Delays struct {
	Register      time.Duration `env:"REGISTER" envDefault:"1s"`
	Login         time.Duration `env:"LOGIN" envDefault:"800ms"`
	ProfileUpdate time.Duration `env:"PROFILE_UPDATE" envDefault:"800ms"`
}

// Seed contains the known users fixture loaded at startup.
type Seed struct {
	File string `env:"FILE"`
}

// CLI contains terminal parameters.
type CLI struct {
	Prompt string `env:"PROMPT" envDefault:"> "`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Delays.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (d Delays) validate() error {
	if d.Register < 0 || d.Login < 0 || d.ProfileUpdate < 0 {
		return errors.New("delays must not be negative")
	}
	return nil
}
