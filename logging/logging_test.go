package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.name))
		})
	}
}

func TestConfigureReturnsSharedLogger(t *testing.T) {
	first := Configure("debug")
	require.NotNil(t, first)
	assert.Same(t, first, Logger())
	assert.Equal(t, slog.LevelDebug, level.Level())

	second := Configure("error")
	assert.Same(t, first, second)
	assert.Equal(t, slog.LevelError, level.Level())
}
