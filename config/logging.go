package config

import (
	"context"

	"github.com/outofforest/logger"
	"go.uber.org/zap"
)

// LoggingFactory collects data for logging config
type LoggingFactory struct {
	// VerboseLogging turns on verbose logging
	VerboseLogging bool
}

// Config returns new logging config
func (f *LoggingFactory) Config() Logging {
	return Logging{
		Verbose: f.VerboseLogging,
	}
}

// Logging stores configuration of logging
type Logging struct {
	// Verbose turns on verbose logging
	Verbose bool
}

// Logger returns logger taken from context, debug messages are dropped unless verbose logging is on
func (l Logging) Logger(ctx context.Context) *zap.Logger {
	log := logger.Get(ctx)
	if !l.Verbose {
		log = log.WithOptions(zap.IncreaseLevel(zap.InfoLevel))
	}
	return log
}
