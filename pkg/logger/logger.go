package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/killallgit/parley/pkg/config"
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

// Logger provides a unified logging interface. A Logger returned by
// WithComponent has no output of its own and writes through the default
// logger installed by Init, so it can be created before Init runs.
type Logger struct {
	level       LogLevel
	logger      *log.Logger
	file        *os.File
	initialized bool
	echo        bool
	component   string
}

var (
	mu            sync.RWMutex
	defaultLogger *Logger
)

// Init initializes the logger with configuration from global config
func Init() error {
	mu.Lock()
	defer mu.Unlock()

	if defaultLogger != nil && defaultLogger.initialized {
		return nil // Already initialized
	}

	settings := config.Get()
	level := ParseLevel(settings.Logging.Level)

	logger, err := New(level, settings.Logging.LogFile, settings.Logging.Preserve)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	defaultLogger = logger
	return nil
}

// New creates a new Logger instance
func New(level LogLevel, logFile string, persist bool) (*Logger, error) {
	// Handle log file path resolution
	logPath := logFile
	if !filepath.IsAbs(logPath) {
		// If path is relative, make it relative to settings directory
		logPath = config.BuildSettingsPath(filepath.Base(logPath))
	}

	// Ensure log directory exists
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if persist {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
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
		echo:        true,
	}, nil
}

// NewWriter creates a Logger that writes to w without timestamps.
func NewWriter(level LogLevel, w io.Writer) *Logger {
	return &Logger{
		level:       level,
		logger:      log.New(w, "", 0),
		initialized: true,
	}
}

// Close closes the log file
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// ParseLevel converts a string level to LogLevel
func ParseLevel(levelStr string) LogLevel {
	switch strings.ToLower(levelStr) {
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

// sink returns the logger that actually owns an output.
func (l *Logger) sink() *Logger {
	if l != nil && l.logger != nil {
		return l
	}
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// log writes a log message if the level is appropriate
func (l *Logger) log(level LogLevel, msg string, keyvals ...interface{}) {
	out := l.sink()
	if out == nil || level < out.level {
		return
	}

	component := out.component
	if l != nil && l.component != "" {
		component = l.component
	}

	line := formatLine(level, component, msg, keyvals)
	out.logger.Print(line)

	// Also write to stderr for errors and fatal messages
	if level >= LevelError && out.echo {
		fmt.Fprintln(os.Stderr, line)
	}
}

func formatLine(level LogLevel, component, msg string, keyvals []interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ", level.String())
	if component != "" {
		fmt.Fprintf(&b, "[%s] ", component)
	}
	b.WriteString(msg)

	for i := 0; i < len(keyvals); i += 2 {
		if i+1 < len(keyvals) {
			fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
		} else {
			fmt.Fprintf(&b, " %v=(missing)", keyvals[i])
		}
	}
	return b.String()
}

// Debug logs a debug message with optional key/value pairs
func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	l.log(LevelDebug, msg, keyvals...)
}

// Info logs an info message with optional key/value pairs
func (l *Logger) Info(msg string, keyvals ...interface{}) {
	l.log(LevelInfo, msg, keyvals...)
}

// Warn logs a warning message with optional key/value pairs
func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	l.log(LevelWarn, msg, keyvals...)
}

// Error logs an error message with optional key/value pairs
func (l *Logger) Error(msg string, keyvals ...interface{}) {
	l.log(LevelError, msg, keyvals...)
}

// WithComponent returns a logger that tags every line with component
func WithComponent(component string) *Logger {
	return &Logger{component: component}
}

// Package-level convenience functions using the default logger

// Debug logs a debug message using the default logger
func Debug(format string, args ...interface{}) {
	(*Logger)(nil).log(LevelDebug, fmt.Sprintf(format, args...))
}

// Info logs an info message using the default logger
func Info(format string, args ...interface{}) {
	(*Logger)(nil).log(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn logs a warning message using the default logger
func Warn(format string, args ...interface{}) {
	(*Logger)(nil).log(LevelWarn, fmt.Sprintf(format, args...))
}

// Error logs an error message using the default logger
func Error(format string, args ...interface{}) {
	(*Logger)(nil).log(LevelError, fmt.Sprintf(format, args...))
}

// Fatal logs a fatal message and exits using the default logger
func Fatal(format string, args ...interface{}) {
	if Default() == nil {
		fmt.Fprintf(os.Stderr, "[FATAL] "+format+"\n", args...)
		os.Exit(1)
	}
	(*Logger)(nil).log(LevelFatal, fmt.Sprintf(format, args...))
	os.Exit(1)
}

// Default returns the logger installed by Init or SetDefault.
func Default() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the default logger. Passing nil disables logging.
func SetDefault(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

// SetConsoleEcho controls whether errors are copied to stderr. The TUI
// turns this off while it owns the terminal.
func SetConsoleEcho(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger != nil {
		defaultLogger.echo = enabled
	}
}

// SetOutput sets the output writer for the logger (useful for testing)
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger != nil && defaultLogger.logger != nil {
		defaultLogger.logger.SetOutput(w)
	}
}

// Close closes the default logger
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger != nil {
		err := defaultLogger.Close()
		defaultLogger = nil
		return err
	}
	return nil
}
