package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the global logger with zerolog
func InitLogger() {
	// Configure zerolog
	zerolog.TimeFieldFormat = time.RFC3339
	// Set log level from environment or default to Info
	level := zerolog.InfoLevel
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsedLevel
		}
	}

	zerolog.SetGlobalLevel(level)

	// Use console writer for development, JSON for production
	if os.Getenv("LOG_FORMAT") != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
}

// Info logs an info message with optional fields
func Info() *zerolog.Event {
	return log.Info()
}

// Debug logs a debug message with optional fields
func Debug() *zerolog.Event {
	return log.Debug()
}

// Error logs an error message with optional fields
func Error() *zerolog.Event {
	return log.Error()
}

// Warn logs a warning message with optional fields
func Warn() *zerolog.Event {
	return log.Warn()
}

// Fatal logs a fatal message and exits
func Fatal() *zerolog.Event {
	return log.Fatal()
}
