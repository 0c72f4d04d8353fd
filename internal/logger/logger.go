package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFileName is the name of the rotated log file inside the logs directory.
const LogFileName = "tplresolve.log"

var (
	// Log is the global logger instance. It discards everything until Init
	// or InitWithFile is called, so library code may log unconditionally.
	Log = zerolog.Nop()

	// fileWriter is the file output for logging (with rotation)
	fileWriter *lumberjack.Logger

	// logContext holds invocation context for log entries (optional, may be empty)
	logContext   logContextData
	logContextMu sync.RWMutex
)

type logContextData struct {
	Strategy   string
	Invocation string
}

// SetContext sets the resolution strategy and invocation id attached to all
// subsequent log entries. Pass empty strings to clear. Thread-safe.
func SetContext(strategy, invocation string) {
	logContextMu.Lock()
	defer logContextMu.Unlock()
	logContext = logContextData{
		Strategy:   strategy,
		Invocation: invocation,
	}
}

// ClearContext clears the invocation context.
func ClearContext() {
	SetContext("", "")
}

// NewInvocationID returns a random id used to correlate the log lines of one
// CLI invocation inside a shared, rotated log file.
func NewInvocationID() string {
	return uuid.NewString()
}

func getContext() logContextData {
	logContextMu.RLock()
	defer logContextMu.RUnlock()
	return logContext
}

func addContext(event *zerolog.Event) *zerolog.Event {
	ctx := getContext()
	if ctx.Strategy != "" {
		event = event.Str("strategy", ctx.Strategy)
	}
	if ctx.Invocation != "" {
		event = event.Str("invocation", ctx.Invocation)
	}
	return event
}

// LoggingConfig holds configuration for file-based logging.
// This mirrors config.LoggingConfig but is duplicated here to avoid
// circular imports.
type LoggingConfig struct {
	FileEnabled *bool
	MaxSizeMB   int
	MaxAgeDays  int
	MaxBackups  int
}

// IsFileEnabled returns whether file logging is enabled.
// Defaults to false if not explicitly set.
func (c *LoggingConfig) IsFileEnabled() bool {
	if c.FileEnabled == nil {
		return false
	}
	return *c.FileEnabled
}

// GetMaxSizeMB returns the max size in MB, defaulting to 10 if not set.
func (c *LoggingConfig) GetMaxSizeMB() int {
	if c.MaxSizeMB <= 0 {
		return 10
	}
	return c.MaxSizeMB
}

// GetMaxAgeDays returns the max age in days, defaulting to 7 if not set.
func (c *LoggingConfig) GetMaxAgeDays() int {
	if c.MaxAgeDays <= 0 {
		return 7
	}
	return c.MaxAgeDays
}

// GetMaxBackups returns the max backups, defaulting to 3 if not set.
func (c *LoggingConfig) GetMaxBackups() int {
	if c.MaxBackups <= 0 {
		return 3
	}
	return c.MaxBackups
}

func levelFor(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func consoleWriter() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
}

// Init initializes console-only logging on stderr.
func Init(debug bool) {
	Log = zerolog.New(consoleWriter()).
		Level(levelFor(debug)).
		With().
		Timestamp().
		Logger()
}

// InitWithFile initializes the logger with optional rotated file output.
// If logsDir is empty or cfg disables file logging, this behaves like Init.
func InitWithFile(debug bool, logsDir string, cfg *LoggingConfig) error {
	if logsDir == "" || cfg == nil || !cfg.IsFileEnabled() {
		Init(debug)
		return nil
	}

	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	fileWriter = &lumberjack.Logger{
		Filename:   filepath.Join(logsDir, LogFileName),
		MaxSize:    cfg.GetMaxSizeMB(),
		MaxAge:     cfg.GetMaxAgeDays(),
		MaxBackups: cfg.GetMaxBackups(),
		LocalTime:  true,
	}

	// Console stays human-readable, the file gets JSON lines.
	Log = zerolog.New(io.MultiWriter(consoleWriter(), fileWriter)).
		Level(levelFor(debug)).
		With().
		Timestamp().
		Logger()

	return nil
}

// CloseFileWriter closes the file writer if it exists.
// Call this on program shutdown for clean log file closure.
func CloseFileWriter() error {
	if fileWriter != nil {
		err := fileWriter.Close()
		fileWriter = nil
		return err
	}
	return nil
}

// LogFilePath returns the path to the current log file, or "" if file
// logging is disabled.
func LogFilePath() string {
	if fileWriter != nil {
		return fileWriter.Filename
	}
	return ""
}

// Debug logs a debug message
func Debug() *zerolog.Event {
	return addContext(Log.Debug())
}

// Info logs an info message
func Info() *zerolog.Event {
	return addContext(Log.Info())
}

// Warn logs a warning message
func Warn() *zerolog.Event {
	return addContext(Log.Warn())
}

// Error logs an error message
func Error() *zerolog.Event {
	return addContext(Log.Error())
}

// WithField returns a logger with an additional field
func WithField(key string, value any) zerolog.Logger {
	return Log.With().Interface(key, value).Logger()
}
