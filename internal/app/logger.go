package app

import (
	"github.com/guttosm/blend-service/config"
	"github.com/guttosm/blend-service/internal/logger"
)

// InitializeLogger initializes the JSON logger from the logging configuration.
func InitializeLogger(cfg config.LoggingConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}
