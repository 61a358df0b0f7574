package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	derrors "github.com/disparo/disparo/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		verbose bool
		enabled zapcore.Level
		skipped zapcore.Level
	}{
		{"info", false, zapcore.InfoLevel, zapcore.DebugLevel},
		{"warn", false, zapcore.WarnLevel, zapcore.InfoLevel},
		{"error", true, zapcore.DebugLevel, zapcore.DebugLevel - 1},
	}

	for _, tt := range tests {
		logger, err := New(tt.level, tt.verbose)
		if err != nil {
			t.Fatalf("New(%q, %v) failed: %v", tt.level, tt.verbose, err)
		}
		if !logger.Core().Enabled(tt.enabled) {
			t.Errorf("New(%q, %v): expected %s enabled", tt.level, tt.verbose, tt.enabled)
		}
		if logger.Core().Enabled(tt.skipped) {
			t.Errorf("New(%q, %v): expected %s disabled", tt.level, tt.verbose, tt.skipped)
		}
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud", false)
	if !derrors.IsCode(err, derrors.CodeInvalidConfig) {
		t.Errorf("Expected %s, got %v", derrors.CodeInvalidConfig, err)
	}
}
