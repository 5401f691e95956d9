// Package logging provides component loggers for targetsweep on top of
// charmbracelet/log.
//
// Log lines go to a size-rotated file under $XDG_STATE_HOME. Console output on
// stderr is opt-in and is never enabled while the TUI owns the terminal; in
// TUI mode recent entries are kept in a LogBuffer instead so the interface
// can show them.
//
//	if err := logging.Init(logging.DefaultConfig()); err != nil {
//	    return err
//	}
//	defer logging.Close()
//
//	logger := logging.Get("scanner")
//	logger.Info("scan started", "root", "/home/user/src")
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// AppName names the state directory and log file.
const AppName = "targetsweep"

// Level represents a logging level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

func (l Level) charm() log.Level {
	switch l {
	case LevelDebug:
		return log.DebugLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ErrInvalidLevel is returned when an invalid log level string is provided.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel parses a string into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %s", ErrInvalidLevel, s)
	}
}

// Config configures the logging system.
type Config struct {
	// Level is the file log level (debug, info, warn, error).
	Level string

	// Path is the log file path. Empty uses DefaultLogPath().
	Path string

	// Rotation configures log file rotation.
	Rotation RotationConfig

	// ConsoleLevel enables stderr output at this level and above.
	// Empty disables console output.
	ConsoleLevel string

	// TUIMode suppresses console output and keeps recent entries in a
	// LogBuffer.
	TUIMode bool

	// BufferSize is the LogBuffer capacity in TUI mode.
	BufferSize int
}

// LogEntry is a single log line as seen by the TUI.
type LogEntry struct {
	Time      time.Time
	Level     Level
	Component string
	Message   string
}

// String formats the entry for a one-line status display.
func (e LogEntry) String() string {
	return fmt.Sprintf("%s %s: %s", e.Level, e.Component, e.Message)
}

// Logger is a component logger. It writes to the log file and, when
// enabled, to stderr. Loggers stay valid across Init and Close and always use
// the current sinks.
type Logger struct {
	component string
	keyvals   []interface{}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	l.log(LevelDebug, msg, keyvals...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, keyvals ...interface{}) {
	l.log(LevelInfo, msg, keyvals...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	l.log(LevelWarn, msg, keyvals...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, keyvals ...interface{}) {
	l.log(LevelError, msg, keyvals...)
}

// With returns a logger that adds keyvals to every line.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	merged := make([]interface{}, 0, len(l.keyvals)+len(keyvals))
	merged = append(merged, l.keyvals...)
	merged = append(merged, keyvals...)
	return &Logger{component: l.component, keyvals: merged}
}

func (l *Logger) log(level Level, msg string, keyvals ...interface{}) {
	if len(l.keyvals) > 0 {
		keyvals = append(append([]interface{}{}, l.keyvals...), keyvals...)
	}

	s := globalState.sinksFor(l.component)
	s.file.Log(level.charm(), msg, keyvals...)
	if s.console != nil {
		s.console.Log(level.charm(), msg, keyvals...)
	}

	if s.buffer != nil && level >= s.level {
		s.buffer.Add(LogEntry{
			Time:      time.Now(),
			Level:     level,
			Component: l.component,
			Message:   msg,
		})
	}
}

// sinks are the outputs of one component. They are immutable once built.
type sinks struct {
	file    *log.Logger
	console *log.Logger
	buffer  *LogBuffer
	level   Level
}

// state holds the process-wide logging configuration.
type state struct {
	mu          sync.RWMutex
	initialized bool
	writer      io.WriteCloser
	level       Level
	sinks       map[string]*sinks

	console      bool
	consoleLevel Level
	logBuffer    *LogBuffer
}

var globalState = &state{
	sinks: make(map[string]*sinks),
}

// Init configures logging. Loggers discard their output until Init runs.
func Init(cfg Config) error {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	console := false
	consoleLevel := LevelWarn
	if cfg.ConsoleLevel != "" && !cfg.TUIMode {
		consoleLevel, err = ParseLevel(cfg.ConsoleLevel)
		if err != nil {
			return fmt.Errorf("parsing console level: %w", err)
		}
		console = true
	}

	path := cfg.Path
	if path == "" {
		path = DefaultLogPath()
	}
	writer, err := newFileWriter(path, cfg.Rotation)
	if err != nil {
		return fmt.Errorf("creating log writer: %w", err)
	}

	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if globalState.writer != nil {
		_ = globalState.writer.Close()
	}

	globalState.writer = writer
	globalState.level = level
	globalState.console = console
	globalState.consoleLevel = consoleLevel
	globalState.logBuffer = nil
	if cfg.TUIMode {
		globalState.logBuffer = NewLogBuffer(cfg.BufferSize)
	}
	globalState.initialized = true
	globalState.sinks = make(map[string]*sinks)

	return nil
}

// Get returns a logger for component.
func Get(component string) *Logger {
	return &Logger{component: component}
}

// sinksFor returns the sinks of component, building them on first use.
func (s *state) sinksFor(component string) *sinks {
	s.mu.RLock()
	out, ok := s.sinks[component]
	s.mu.RUnlock()
	if ok {
		return out
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if out, ok := s.sinks[component]; ok {
		return out
	}
	out = s.build(component)
	s.sinks[component] = out
	return out
}

// build creates the sinks for component. Must be called with s.mu held.
func (s *state) build(component string) *sinks {
	if !s.initialized {
		return &sinks{
			file: log.NewWithOptions(io.Discard, log.Options{Prefix: component}),
		}
	}

	out := &sinks{
		file: log.NewWithOptions(s.writer, log.Options{
			Level:           s.level.charm(),
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          component,
			Formatter:       log.LogfmtFormatter,
		}),
		buffer: s.logBuffer,
		level:  s.level,
	}

	if s.console {
		out.console = log.NewWithOptions(os.Stderr, log.Options{
			Level:           s.consoleLevel.charm(),
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Prefix:          component,
		})
	}

	return out
}

// Close flushes and closes the log file. Loggers discard their output
// afterwards.
func Close() error {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if !globalState.initialized {
		return nil
	}

	var err error
	if globalState.writer != nil {
		if cerr := globalState.writer.Close(); cerr != nil {
			err = fmt.Errorf("closing log writer: %w", cerr)
		}
		globalState.writer = nil
	}

	globalState.initialized = false
	globalState.console = false
	globalState.logBuffer = nil
	globalState.sinks = make(map[string]*sinks)

	return err
}

// GetLogBuffer returns the TUI log buffer, or nil outside TUI mode.
func GetLogBuffer() *LogBuffer {
	globalState.mu.RLock()
	defer globalState.mu.RUnlock()
	return globalState.logBuffer
}

// DefaultLogPath returns $XDG_STATE_HOME/targetsweep/targetsweep.log.
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, AppName, AppName+".log")
}

// DefaultConfig returns the configuration used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Path:       DefaultLogPath(),
		Rotation:   DefaultRotationConfig(),
		BufferSize: DefaultBufferSize,
	}
}
