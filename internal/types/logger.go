package types

import (
	"io"
	"log"
	"os"
)

// LogLevel represents the logging level
type LogLevel int

// Log levels
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelNone // Disables all logging
)

// Logger provides leveled logging for the engine and its front-ends.
type Logger struct {
	debugLogger *log.Logger
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	level       LogLevel
}

// GlobalLogger is the shared logger instance used when no explicit logger is
// wired in.
var GlobalLogger *Logger

// NewLogger creates a logger writing to output at the given level.
func NewLogger(level LogLevel, output io.Writer) *Logger {
	if output == nil {
		output = os.Stdout
	}

	return &Logger{
		debugLogger: log.New(output, "DEBUG: ", log.Ldate|log.Ltime),
		infoLogger:  log.New(output, "INFO: ", log.Ldate|log.Ltime),
		warnLogger:  log.New(output, "WARN: ", log.Ldate|log.Ltime),
		errorLogger: log.New(output, "ERROR: ", log.Ldate|log.Ltime),
		level:       level,
	}
}

// SetLevel changes the logging level
func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.level <= LogLevelDebug {
		l.debugLogger.Printf(format, v...)
	}
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	if l.level <= LogLevelInfo {
		l.infoLogger.Printf(format, v...)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	if l.level <= LogLevelWarn {
		l.warnLogger.Printf(format, v...)
	}
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	if l.level <= LogLevelError {
		l.errorLogger.Printf(format, v...)
	}
}

func init() {
	GlobalLogger = NewLogger(LogLevelInfo, os.Stdout)
}
