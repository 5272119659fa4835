package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Achintharya/eightfold-bot/pkg/config"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Logger provides a unified logging interface
type Logger struct {
	level       LogLevel
	logger      *log.Logger
	file        *os.File
	initialized bool
}

var defaultLogger *Logger

// Init initializes the default logger from the global config
func Init() error {
	if defaultLogger != nil && defaultLogger.initialized {
		return nil // Already initialized
	}

	settings := config.Get()
	level := parseLevel(settings.Logging.Level)

	logger, err := New(level, settings.Logging.LogFile, settings.Logging.Preserve)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	defaultLogger = logger
	return nil
}

// New creates a new Logger instance writing to logFile. When preserve
// is false the file is truncated on startup.
func New(level LogLevel, logFile string, preserve bool) (*Logger, error) {
	logPath := logFile
	if !filepath.IsAbs(logPath) {
		logPath = config.BuildSettingsPath(filepath.Base(logPath))
	}

	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if preserve {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(logPath, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{
		level:       level,
		logger:      log.New(file, "", log.LstdFlags),
		file:        file,
		initialized: true,
	}, nil
}

// Close closes the log file
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// parseLevel converts a string level to LogLevel
func parseLevel(levelStr string) LogLevel {
	switch levelStr {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

func (l *Logger) shouldLog(level LogLevel) bool {
	return level >= l.level
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if !l.shouldLog(level) {
		return
	}

	message := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] %s", level.String(), message)

	// Errors and fatal messages also go to stderr
	if level >= LevelError {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", level.String(), message)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.log(LevelFatal, format, args...)
	os.Exit(1)
}

// Package-level convenience functions using the default logger

// Debug logs a debug message using the default logger
func Debug(format string, args ...interface{}) {
	if defaultLogger == nil {
		return
	}
	defaultLogger.Debug(format, args...)
}

// Info logs an info message using the default logger
func Info(format string, args ...interface{}) {
	if defaultLogger == nil {
		return
	}
	defaultLogger.Info(format, args...)
}

// Warn logs a warning message using the default logger
func Warn(format string, args ...interface{}) {
	if defaultLogger == nil {
		return
	}
	defaultLogger.Warn(format, args...)
}

// Error logs an error message using the default logger
func Error(format string, args ...interface{}) {
	if defaultLogger == nil {
		return
	}
	defaultLogger.Error(format, args...)
}

// Close closes the default logger's file
func Close() error {
	if defaultLogger == nil {
		return nil
	}
	return defaultLogger.Close()
}

// SetLevel changes the default logger's level at runtime
func SetLevel(level LogLevel) {
	if defaultLogger == nil {
		return
	}
	defaultLogger.level = level
}
