//go:build !integration

package app

import (
	"testing"

	"github.com/guttosm/blend-service/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInitializeLogger(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	tests := []struct {
		name     string
		cfg      config.LoggingConfig
		expected zerolog.Level
	}{
		{name: "empty level falls back to info", cfg: config.LoggingConfig{}, expected: zerolog.InfoLevel},
		{name: "debug level", cfg: config.LoggingConfig{Level: "debug"}, expected: zerolog.DebugLevel},
		{name: "pretty output", cfg: config.LoggingConfig{Level: "info", Pretty: true}, expected: zerolog.InfoLevel},
		{name: "warn level", cfg: config.LoggingConfig{Level: "warn"}, expected: zerolog.WarnLevel},
		{name: "error level", cfg: config.LoggingConfig{Level: "error"}, expected: zerolog.ErrorLevel},
		{name: "unknown level falls back to info", cfg: config.LoggingConfig{Level: "verbose"}, expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				InitializeLogger(tt.cfg)
			})
			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}
