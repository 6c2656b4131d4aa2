package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level represents log levels
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

// Logger is the main logging interface
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	Fatal(msg string, err error, fields ...Field)

	WithContext(ctx context.Context) Logger
	WithFields(fields ...Field) Logger
	WithRequestID(requestID string) Logger
	WithUserID(userID int64) Logger
	WithComponent(component string) Logger
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// zlogger implements Logger using zerolog
type zlogger struct {
	logger zerolog.Logger
}

// Config holds logger configuration
type Config struct {
	Level       Level
	Environment string // "development" or "production"
	ServiceName string
	Version     string
	Output      io.Writer
}

var globalLogger *zlogger

// Init initializes the global logger. Production gets JSON output for
// log aggregation, development a pretty console writer.
func Init(cfg Config) {
	var output io.Writer = os.Stdout
	if cfg.Output != nil {
		output = cfg.Output
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "cms-platform"
	}

	if cfg.Environment == "production" {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := zerolog.New(output).
			With().
			Timestamp().
			Str("service", cfg.ServiceName).
			Str("version", cfg.Version).
			Logger()
		globalLogger = &zlogger{logger: l}
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
		l := zerolog.New(output).
			With().
			Timestamp().
			Logger()
		globalLogger = &zlogger{logger: l}
	}

	switch cfg.Level {
	case LevelDebug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case LevelInfo:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case LevelWarn:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case LevelError:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// Get returns the global logger instance
func Get() Logger {
	if globalLogger == nil {
		Init(Config{
			Level:       LevelInfo,
			Environment: "development",
			ServiceName: "cms-platform",
		})
	}
	return globalLogger
}

func (l *zlogger) emit(event *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		event = event.Interface(f.Key, f.Value)
	}
	event.Msg(msg)
}

// Debug logs a debug message
func (l *zlogger) Debug(msg string, fields ...Field) {
	l.emit(l.logger.Debug(), msg, fields)
}

// Info logs an info message
func (l *zlogger) Info(msg string, fields ...Field) {
	l.emit(l.logger.Info(), msg, fields)
}

// Warn logs a warning message
func (l *zlogger) Warn(msg string, fields ...Field) {
	l.emit(l.logger.Warn(), msg, fields)
}

// Error logs an error message
func (l *zlogger) Error(msg string, err error, fields ...Field) {
	event := l.logger.Error()
	if err != nil {
		event = event.Err(err)
	}
	l.emit(event, msg, fields)
}

// Fatal logs a fatal message and exits
func (l *zlogger) Fatal(msg string, err error, fields ...Field) {
	event := l.logger.Fatal()
	if err != nil {
		event = event.Err(err)
	}
	l.emit(event, msg, fields)
}

// WithContext creates a new logger carrying request/user ids found in ctx
func (l *zlogger) WithContext(ctx context.Context) Logger {
	nl := l.logger
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		nl = nl.With().Str("request_id", requestID).Logger()
	}
	if userID, ok := ctx.Value(ContextKeyUserID).(int64); ok {
		nl = nl.With().Int64("user_id", userID).Logger()
	}
	return &zlogger{logger: nl}
}

// WithFields creates a new logger with additional fields
func (l *zlogger) WithFields(fields ...Field) Logger {
	ctx := l.logger.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return &zlogger{logger: ctx.Logger()}
}

// WithRequestID creates a new logger with request ID
func (l *zlogger) WithRequestID(requestID string) Logger {
	return &zlogger{logger: l.logger.With().Str("request_id", requestID).Logger()}
}

// WithUserID creates a new logger with user ID
func (l *zlogger) WithUserID(userID int64) Logger {
	return &zlogger{logger: l.logger.With().Int64("user_id", userID).Logger()}
}

// WithComponent creates a new logger with component name
func (l *zlogger) WithComponent(component string) Logger {
	return &zlogger{logger: l.logger.With().Str("component", component).Logger()}
}
