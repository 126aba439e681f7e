package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		level zapcore.Level
	}{
		{"default", DefaultConfig(), zapcore.InfoLevel},
		{"development", DevelopmentConfig(), zapcore.DebugLevel},
		{"bad level falls back to info", Config{Level: "loud"}, zapcore.InfoLevel},
		{"warn", Config{Level: "warn", Format: "console"}, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if !l.Core().Enabled(tt.level) {
				t.Fatalf("level %v not enabled", tt.level)
			}
			if tt.level > zapcore.DebugLevel && l.Core().Enabled(tt.level-1) {
				t.Fatalf("level below %v enabled", tt.level)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("FP_LOG_LEVEL", "error")
	t.Setenv("FP_LOG_FORMAT", "console")
	t.Setenv("FP_LOG_SAMPLING", "TRUE")
	t.Setenv("FP_LOG_SAMPLE_INITIAL", "5")
	t.Setenv("FP_LOG_SAMPLE_THEREAFTER", "nope")

	cfg := FromEnv(true)
	if cfg.Level != "error" || cfg.Format != "console" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if !cfg.EnableSampling || cfg.SampleInitial != 5 || cfg.SampleThereafter != 0 {
		t.Fatalf("sampling = %+v", cfg)
	}
	if !cfg.Development {
		t.Fatalf("development flag lost")
	}
}
