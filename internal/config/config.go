package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"HDDPull/internal/calc/hdd"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Addr            string        `env:"ADDR" envDefault:":443"`
	TLSCert         string        `env:"TLS_CERT" envDefault:"server.crt"`
	TLSKey          string        `env:"TLS_KEY" envDefault:"server.key"`
	TokenKey        string        `env:"TOKEN_KEY,required,notEmpty"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	AnthropicAPIKey string        `env:"ANTHROPIC_API_KEY"`
	AdvisorModel    string        `env:"ADVISOR_MODEL"`
	RateLimit       float64       `env:"RATE_LIMIT" envDefault:"1"`
	RateBurst       int           `env:"RATE_BURST" envDefault:"3"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	// Engine starts from hdd.DefaultConstants; only variables that are set
	// (HDD_PIPE_DENSITY, HDD_MODULUS, ...) replace a value.
	Engine hdd.Constants `envPrefix:"HDD_"`
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the process environment only.
func Parse() (Config, error) {
	cfg := Config{Engine: hdd.DefaultConstants()}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Engine.Validate(); err != nil {
		return Config{}, fmt.Errorf("engine constants: %w", err)
	}
	return cfg, nil
}

func (c Config) Logger() (*zap.Logger, error) {
	if c.LogLevel == "debug" {
		return zap.NewDevelopment()
	}
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
