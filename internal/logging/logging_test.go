package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"podder.dev/internal/config"
)

func TestNewLevels(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "WARN"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("error should be enabled at warn level")
	}

	if _, err := New(config.LogConfig{Level: "chatty"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNewDevelopment(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "debug", Development: true})
	if err != nil {
		t.Fatal(err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be enabled")
	}
}
