package commands

import (
	"io"
	"strings"
	"time"

	"github.com/VakeDomen/core-api-client/internal/constants"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Logger adapts a zerolog.Logger to coreapi.Logger.
type Logger struct {
	logger zerolog.Logger
}

// NewLogger creates a console logger writing to out at the given level.
func NewLogger(out io.Writer, level string) *Logger {
	console := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}

	logger := zerolog.New(console).With().Timestamp().Logger().Level(parseLevel(level))

	return &Logger{logger: logger}
}

// Debug implements coreapi.Logger.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug().Fields(fields).Msg(msg)
}

// Info implements coreapi.Logger.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info().Fields(fields).Msg(msg)
}

// Warn implements coreapi.Logger.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn().Fields(fields).Msg(msg)
}

// Error implements coreapi.Logger.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error().Fields(fields).Msg(msg)
}

// effectiveLogLevel picks the level needed for the logging options in config.
// --verbose and log_raw_response need debug; log_target needs at least info.
func effectiveLogLevel(config *Config) string {
	if viper.GetBool(constants.ConfigKeyVerbose) || config.LogRawResponse {
		return "debug"
	}

	level := config.LogLevel
	if level == "" {
		level = constants.DefaultLogLevel
	}

	if config.LogTarget && parseLevel(level) > zerolog.InfoLevel {
		return "info"
	}

	return level
}

// parseLevel converts a string log level to zerolog.Level.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}
