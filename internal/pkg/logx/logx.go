/*
Package logx provides a structured logging wrapper based on zerolog.

It initializes the global logger, selects the output format (console for
development, JSON otherwise), and exposes small helpers for the common
logging levels.
*/
package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitGlobalLogger configures the global zerolog instance.
// Development mode logs at Debug level through a human-readable ConsoleWriter;
// otherwise logs are emitted as JSON at Info level. All logs carry a Unix
// timestamp and caller information.
func InitGlobalLogger(isDevelopment bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if isDevelopment {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    false,
			TimeFormat: time.RFC3339,
		})
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	log.Logger = logger.With().Caller().Logger()
}

// Logger returns a pointer to the global zerolog.Logger instance.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// evenFields drops the fields slice entirely when the key/value count is odd,
// which would otherwise make zerolog misrender the pairs.
func evenFields(level string, fields []any) []any {
	if len(fields)%2 != 0 {
		Logger().Warn().
			Int("fields_count", len(fields)).
			Str("log_level", level).
			Msg("Odd number of log fields. Fields ignored.")
		return nil
	}
	return fields
}

// Info records a message at the Info level with optional key-value fields.
func Info(msg string, fields ...any) {
	Logger().Info().
		Fields(evenFields("Info", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Warn records a message at the Warn level with optional key-value fields.
func Warn(msg string, fields ...any) {
	Logger().Warn().
		Fields(evenFields("Warn", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Error records an error and message at the Error level with optional key-value fields.
func Error(err error, msg string, fields ...any) {
	Logger().Error().
		Err(err).
		Fields(evenFields("Error", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Fatal records an error at the Fatal level and terminates the process.
func Fatal(err error, msg string, fields ...any) {
	Logger().Fatal().
		Err(err).
		Fields(evenFields("Fatal", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}
