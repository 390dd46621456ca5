// Package config loads server settings: a local .env if present, then
// environment variables, then an optional YAML rules file for draft
// defaults. Env always wins over the file.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr     string `env:"ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Empty DSN runs on the in-memory store (single node, dev only).
	DatabaseDSN string `env:"DATABASE_DSN"`

	AnthropicAPIKey   string `env:"ANTHROPIC_API_KEY"`
	AdvisorModel      string `env:"ADVISOR_MODEL"`
	AdvisorTimeoutSec int    `env:"ADVISOR_TIMEOUT_SEC" envDefault:"30"`

	// PlayerFile points at a JSON player catalog; empty uses the built-in
	// synthetic board.
	PlayerFile string `env:"PLAYER_FILE"`

	RulesFile string `env:"RULES_FILE"`
	Rules     DraftDefaults
}

// DraftDefaults seeds drafts whose start request leaves the knobs unset.
type DraftDefaults struct {
	Participants int `yaml:"participants"`
	Rounds       int `yaml:"rounds"`
	PickTimerSec int `yaml:"pick_timer_sec"`
}

func Load() (Config, error) {
	// A missing .env is fine; env vars may come from anywhere.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Rules = DraftDefaults{Participants: 12, Rounds: 5, PickTimerSec: 60}
	if cfg.RulesFile != "" {
		raw, err := os.ReadFile(cfg.RulesFile)
		if err != nil {
			return Config{}, fmt.Errorf("read rules file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg.Rules); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", cfg.RulesFile, err)
		}
	}
	return cfg, nil
}
