// Package logger provides structured logging for golf-league.
//
// The package-level helpers write through a logrus logger. JSON output is the default;
// a text formatter is available for interactive use. Logs go to stderr so command
// output on stdout stays machine-readable.
//
// Example usage:
//
//	logger.Info("Results imported", logger.Fields{
//	    "tournament": "Masters",
//	    "players":    87,
//	})
//
//	logger.Error("Fetch failed", logger.Fields{"url": url}, err)
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Format selects the log encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Fields represents structured log fields
type Fields map[string]interface{}

// Logger provides structured logging
type Logger struct {
	entry *logrus.Logger
}

var defaultLogger *Logger

func init() {
	defaultLogger = New(LevelInfo, FormatJSON, os.Stderr)
}

// ParseLevel converts a level name such as "debug" or "WARN" into a Level.
// Unknown names fall back to INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// New creates a logger with the given minimum level, encoding and destination.
// Messages below the minimum level are discarded.
func New(level Level, format Format, output io.Writer) *Logger {
	log := logrus.New()
	log.SetOutput(output)
	log.SetLevel(toLogrus(level))

	if format == FormatText {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	return &Logger{entry: log}
}

func toLogrus(level Level) logrus.Level {
	switch level {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// SetDefault sets the logger used by the package-level functions
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

func (l *Logger) with(fields Fields, err error) *logrus.Entry {
	e := logrus.NewEntry(l.entry)
	if len(fields) > 0 {
		e = e.WithFields(logrus.Fields(fields))
	}
	if err != nil {
		e = e.WithError(err)
	}
	return e
}

// Debug logs a debug message with optional structured fields
func (l *Logger) Debug(message string, fields Fields) {
	l.with(fields, nil).Debug(message)
}

// Info logs an informational message with optional structured fields
func (l *Logger) Info(message string, fields Fields) {
	l.with(fields, nil).Info(message)
}

// Warn logs a warning with optional structured fields
func (l *Logger) Warn(message string, fields Fields) {
	l.with(fields, nil).Warn(message)
}

// Error logs an error message with optional structured fields and the error itself
func (l *Logger) Error(message string, fields Fields, err error) {
	l.with(fields, err).Error(message)
}

// Package-level convenience functions using default logger

// Debug logs a debug message with the default logger
func Debug(message string, fields Fields) {
	defaultLogger.Debug(message, fields)
}

// Info logs an info message with the default logger
func Info(message string, fields Fields) {
	defaultLogger.Info(message, fields)
}

// Warn logs a warning message with the default logger
func Warn(message string, fields Fields) {
	defaultLogger.Warn(message, fields)
}

// Error logs an error message with the default logger
func Error(message string, fields Fields, err error) {
	defaultLogger.Error(message, fields, err)
}
