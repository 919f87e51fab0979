package logger

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	baseMu sync.RWMutex
	base   = mustBuild("info", "console")
)

// Logger is a printf-style wrapper around a zap sugared logger
type Logger struct {
	sugar     *zap.SugaredLogger
	channelID string
}

// New creates a new logger with the given channel ID
func New(channelID string) *Logger {
	baseMu.RLock()
	z := base
	baseMu.RUnlock()

	return fromZap(z, channelID)
}

// NewWithZap creates a logger on top of an existing zap logger
func NewWithZap(z *zap.Logger, channelID string) *Logger {
	return fromZap(z, channelID)
}

func fromZap(z *zap.Logger, channelID string) *Logger {
	if channelID != "" {
		z = z.With(zap.String("channel", channelID))
	}
	return &Logger{
		sugar:     z.Sugar(),
		channelID: channelID,
	}
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

// With returns a child logger carrying extra key/value pairs
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{
		sugar:     l.sugar.With(keysAndValues...),
		channelID: l.channelID,
	}
}

// Sync flushes buffered log entries
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

// Configure rebuilds the base zap logger used by New and replaces Global.
// level is one of debug, info, warn, error; format is console or json.
func Configure(level, format string) error {
	z, err := build(level, format)
	if err != nil {
		return err
	}
	SetBase(z)
	return nil
}

// SetBase replaces the base zap logger and resets Global on top of it
func SetBase(z *zap.Logger) {
	baseMu.Lock()
	base = z
	baseMu.Unlock()
	SetGlobal(fromZap(z, ""))
}

func build(level, format string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stdout"}
	cfg.Sampling = nil

	switch strings.ToLower(format) {
	case "", "console":
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case "json":
		cfg.Encoding = "json"
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	return cfg.Build()
}

func mustBuild(level, format string) *zap.Logger {
	z, err := build(level, format)
	if err != nil {
		return zap.NewNop()
	}
	return z
}

// Global logger instance for application-wide logging
var Global = New("")

// SetGlobal sets the global logger
func SetGlobal(logger *Logger) {
	Global = logger
}
