// Package logging provides leveled, prefixed logging for the terminal
// emulator, backed by zap.
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents different logging levels
type LogLevel int

const (
	// LevelError only logs errors
	LevelError LogLevel = iota
	// LevelWarn logs warnings and errors
	LevelWarn
	// LevelInfo logs general information, warnings and errors
	LevelInfo
	// LevelDebug logs detailed debug information and all above
	LevelDebug
	// LevelTrace logs very detailed trace information and all above
	LevelTrace
)

// loggerState is shared between a logger and everything derived from it
// via WithPrefix, so SetLevel applies across all prefixes.
type loggerState struct {
	mu    sync.RWMutex
	level LogLevel
}

// Logger provides leveled logging with a per-component prefix.
type Logger struct {
	state *loggerState
	sugar *zap.SugaredLogger
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// GetLogger returns the default logger instance
func GetLogger() *Logger {
	once.Do(func() {
		defaultLogger = NewLogger("TERMSHELL")

		// Set initial log level from environment
		if level := os.Getenv("LOG_LEVEL"); level != "" {
			switch level {
			case "ERROR":
				defaultLogger.SetLevel(LevelError)
			case "WARN":
				defaultLogger.SetLevel(LevelWarn)
			case "INFO":
				defaultLogger.SetLevel(LevelInfo)
			case "DEBUG":
				defaultLogger.SetLevel(LevelDebug)
			case "TRACE":
				defaultLogger.SetLevel(LevelTrace)
			}
		}
	})
	return defaultLogger
}

// NewLogger creates a new logger with the given prefix
func NewLogger(prefix string) *Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		// Level gating happens in this package so Trace can ride on
		// zap's debug level.
		zapcore.DebugLevel,
	)

	return &Logger{
		state: &loggerState{level: LevelInfo},
		sugar: zap.New(core).Sugar().Named(prefix),
	}
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level LogLevel) {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	l.state.level = level
}

// shouldLog determines if a message at the given level should be logged
func (l *Logger) shouldLog(level LogLevel) bool {
	l.state.mu.RLock()
	defer l.state.mu.RUnlock()
	return level <= l.state.level
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	if l.shouldLog(LevelError) {
		l.sugar.Errorf(format, args...)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.shouldLog(LevelWarn) {
		l.sugar.Warnf(format, args...)
	}
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.shouldLog(LevelInfo) {
		l.sugar.Infof(format, args...)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.shouldLog(LevelDebug) {
		l.sugar.Debugf(format, args...)
	}
}

// Trace logs a trace message
func (l *Logger) Trace(format string, args ...interface{}) {
	if l.shouldLog(LevelTrace) {
		l.sugar.Debugf(format, args...)
	}
}

// WithPrefix creates a new logger with an additional prefix sharing the
// same level state.
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{
		state: l.state,
		sugar: l.sugar.Named(prefix),
	}
}
