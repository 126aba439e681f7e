// Package logging builds the zap loggers used across the game and tools.
package logging

import (
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level       string
	Format      string // "json" or "console"
	Development bool

	EnableSampling   bool
	SampleInitial    int
	SampleThereafter int
}

func DefaultConfig() Config {
	return Config{
		Level:            "info",
		Format:           "json",
		EnableSampling:   true,
		SampleInitial:    100,
		SampleThereafter: 100,
	}
}

// DevelopmentConfig logs debug lines to the console. Sampling stays off so
// per-frame warnings are not swallowed.
func DevelopmentConfig() Config {
	return Config{
		Level:       "debug",
		Format:      "console",
		Development: true,
	}
}

func New(cfg Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if cfg.Format == "console" {
		zc.Encoding = "console"
	} else {
		zc.Encoding = "json"
	}

	if cfg.EnableSampling {
		zc.Sampling = &zap.SamplingConfig{
			Initial:    cfg.SampleInitial,
			Thereafter: cfg.SampleThereafter,
		}
	} else {
		zc.Sampling = nil
	}

	return zc.Build(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// FromEnv starts from the development or default config and applies
// FP_LOG_* overrides.
func FromEnv(development bool) Config {
	cfg := DefaultConfig()
	if development {
		cfg = DevelopmentConfig()
	}
	if v := os.Getenv("FP_LOG_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("FP_LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("FP_LOG_SAMPLING"); v != "" {
		cfg.EnableSampling = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("FP_LOG_SAMPLE_INITIAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SampleInitial = n
		}
	}
	if v := os.Getenv("FP_LOG_SAMPLE_THEREAFTER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SampleThereafter = n
		}
	}
	return cfg
}
