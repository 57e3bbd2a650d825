// Package logger provides the process-wide structured logger built on
// log/slog, with a colored text handler for terminals and a JSON
// handler for log shipping.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Config holds logger configuration.
type Config struct {
	Level  string // DEBUG, INFO, WARN, ERROR
	Format string // text, json
	Output string // stdout, stderr, or a file path
}

var (
	mu       sync.RWMutex
	slogger  = slog.New(newTextHandler(os.Stdout, slog.LevelInfo, isTerminal(os.Stdout.Fd())))
	level    = slog.LevelInfo
	format   = "text"
	output   io.Writer = os.Stdout
	useColor = isTerminal(os.Stdout.Fd())
)

// Init configures the logger. Output can be "stdout", "stderr", or a
// file path; files never get color.
func Init(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	switch strings.ToLower(cfg.Output) {
	case "stdout", "":
		output = os.Stdout
		useColor = isTerminal(os.Stdout.Fd())
	case "stderr":
		output = os.Stderr
		useColor = isTerminal(os.Stderr.Fd())
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file %q: %w", cfg.Output, err)
		}
		output = f
		useColor = false
	}

	if cfg.Level != "" {
		level = parseLevel(cfg.Level)
	}
	if f := strings.ToLower(cfg.Format); f == "text" || f == "json" {
		format = f
	}

	rebuild()
	return nil
}

// InitWithWriter points the logger at an arbitrary writer. Test use.
func InitWithWriter(w io.Writer, levelName, formatName string) {
	mu.Lock()
	defer mu.Unlock()

	output = w
	useColor = false
	level = parseLevel(levelName)
	if f := strings.ToLower(formatName); f == "text" || f == "json" {
		format = f
	}
	rebuild()
}

// SetLevel changes the minimum level at runtime. Unknown names are
// ignored.
func SetLevel(name string) {
	mu.Lock()
	defer mu.Unlock()
	level = parseLevel(name)
	rebuild()
}

func parseLevel(name string) slog.Level {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// rebuild swaps the handler; callers hold mu.
func rebuild() {
	if format == "json" {
		slogger = slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level}))
		return
	}
	slogger = slog.New(newTextHandler(output, level, useColor))
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return slogger
}

// Debug logs at debug level with structured key/value pairs.
func Debug(msg string, args ...any) { current().Debug(msg, args...) }

// Info logs at info level with structured key/value pairs.
func Info(msg string, args ...any) { current().Info(msg, args...) }

// Warn logs at warn level with structured key/value pairs.
func Warn(msg string, args ...any) { current().Warn(msg, args...) }

// Error logs at error level with structured key/value pairs.
func Error(msg string, args ...any) { current().Error(msg, args...) }

// With returns a logger carrying pre-bound attributes, typically the
// per-request fields (request id, rpc method).
func With(args ...any) *slog.Logger { return current().With(args...) }
