// Package logging provides structured logging on the log/slog API backed by zap
package logging

import (
	"io"
	"log/slog"
	"os"

	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// Logger wraps slog.Logger with additional application-specific functionality
type Logger struct {
	*slog.Logger
	service string
	version string
}

// Options configures the logger backend
type Options struct {
	Level   string    // debug, info, warn, error
	Format  string    // json or text
	Service string
	Version string
	Output  io.Writer // defaults to stdout
}

// New creates a logger whose slog records are encoded by a zap core
func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	core := zapcore.NewCore(newEncoder(opts.Format), zapcore.AddSync(out), zapLevel(opts.Level))

	return &Logger{
		Logger:  slog.New(zapslog.NewHandler(core)),
		service: opts.Service,
		version: opts.Version,
	}
}

func newEncoder(format string) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	if format == "text" {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}

func zapLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// WithRequestID adds request ID to the logger
func (l *Logger) WithRequestID(reqID string) *Logger {
	return l.with(slog.String(FieldRequestID, reqID))
}

// WithHTTPRequest adds HTTP request context to the logger
func (l *Logger) WithHTTPRequest(method, path string, statusCode int, latencyMs int64) *Logger {
	return l.with(
		slog.String(FieldHTTPMethod, method),
		slog.String(FieldHTTPPath, path),
		slog.Int(FieldHTTPStatus, statusCode),
		slog.Int64(FieldLatencyMs, latencyMs),
	)
}

// WithError adds error context to the logger
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.with(slog.String(FieldError, err.Error()))
}

// WithServiceContext adds service context to the logger
func (l *Logger) WithServiceContext() *Logger {
	return l.with(
		slog.String(FieldService, l.service),
		slog.String(FieldVersion, l.version),
	)
}

func (l *Logger) with(attrs ...any) *Logger {
	return &Logger{
		Logger:  l.Logger.With(attrs...),
		service: l.service,
		version: l.version,
	}
}

// Startup logs application startup information
func (l *Logger) Startup(msg string, args ...any) {
	l.Logger.Info(msg, args...)
}

// Request logs HTTP request completion
func (l *Logger) Request(reqID, method, path string, statusCode int, latencyMs int64) {
	l.WithRequestID(reqID).
		WithHTTPRequest(method, path, statusCode, latencyMs).
		Info("HTTP request completed")
}

// Database logs database-related operations
func (l *Logger) Database(msg string, args ...any) {
	l.Logger.Info("database: "+msg, args...)
}

// DatabaseError logs database errors
func (l *Logger) DatabaseError(msg string, err error, args ...any) {
	l.WithError(err).Error("database: "+msg, args...)
}

// HealthCheck logs health check operations
func (l *Logger) HealthCheck(msg string, args ...any) {
	l.Logger.Info("healthcheck: "+msg, args...)
}

// Fault logs a fatal fault together with its stack trace, when one was captured
func (l *Logger) Fault(msg string, err error, stack []byte, args ...any) {
	if len(stack) > 0 {
		args = append(args, slog.String(FieldStack, string(stack)))
	}
	l.WithError(err).Error(msg, args...)
}
