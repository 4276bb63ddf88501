// Package logger provides the leveled logging interface used across electron.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Logger is the logging interface used by all packages.
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Debug(msg string)
	Error(msg string)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Info(string)  {}
func (NopLogger) Warn(string)  {}
func (NopLogger) Debug(string) {}
func (NopLogger) Error(string) {}

type writerLogger struct {
	w io.Writer
}

func (l writerLogger) write(level, msg string) {
	if l.w == nil {
		return
	}
	ts := time.Now().Format(time.RFC3339)
	_, _ = fmt.Fprintf(l.w, "%s %-5s %s\n", ts, level, msg)
}

func (l writerLogger) Info(msg string)  { l.write("INFO", msg) }
func (l writerLogger) Warn(msg string)  { l.write("WARN", msg) }
func (l writerLogger) Debug(msg string) { l.write("DEBUG", msg) }
func (l writerLogger) Error(msg string) { l.write("ERROR", msg) }

// NewWriterLogger builds a logger that writes to an io.Writer.
func NewWriterLogger(w io.Writer) Logger {
	return writerLogger{w: w}
}

// FileLogger appends timestamped lines to a log file.
type FileLogger struct {
	writerLogger
	file *os.File
}

// NewFileLogger opens (creating if needed) the log file in append mode.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &FileLogger{writerLogger: writerLogger{w: f}, file: f}, nil
}

// Close closes the underlying log file.
func (l *FileLogger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

type multiLogger []Logger

func (m multiLogger) Info(msg string) {
	for _, l := range m {
		l.Info(msg)
	}
}

func (m multiLogger) Warn(msg string) {
	for _, l := range m {
		l.Warn(msg)
	}
}

func (m multiLogger) Debug(msg string) {
	for _, l := range m {
		l.Debug(msg)
	}
}

func (m multiLogger) Error(msg string) {
	for _, l := range m {
		l.Error(msg)
	}
}

// Tee fans every log line out to all given loggers.
func Tee(loggers ...Logger) Logger {
	return multiLogger(loggers)
}

// Infof is a format-style convenience helper.
func Infof(l Logger, format string, args ...any) {
	if l == nil {
		return
	}
	l.Info(fmt.Sprintf(format, args...))
}

// Warnf is a format-style convenience helper.
func Warnf(l Logger, format string, args ...any) {
	if l == nil {
		return
	}
	l.Warn(fmt.Sprintf(format, args...))
}

// Errorf is a format-style convenience helper.
func Errorf(l Logger, format string, args ...any) {
	if l == nil {
		return
	}
	l.Error(fmt.Sprintf(format, args...))
}
