// Package logger writes Shield's diagnostic log. The TUI owns the
// terminal, so the log always goes to a file. Callers take a component
// logger once and pass structured attributes:
//
//	log := logger.WithComponent("gateway")
//	log.Info("request settled", "endpoint", "chat", "status", 200)
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// DefaultLogPath is opened on first use when Init was never called.
const DefaultLogPath = "/tmp/shield-debug.log"

// sink is the writer behind every handler. With no file it drops writes,
// so loggers outlive Close without touching a closed descriptor.
type sink struct {
	mu   sync.Mutex
	file *os.File
}

func (s *sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return len(p), nil
	}
	return s.file.Write(p)
}

func (s *sink) swap(f *os.File) *os.File {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.file
	s.file = f
	return old
}

type state struct {
	mu    sync.Mutex
	level slog.LevelVar
	out   sink
	base  *slog.Logger
	tried bool // an open was attempted, successful or not
}

var std = &state{}

// SetDebug switches between debug and info level. It may be called before
// or after Init.
func SetDebug(on bool) {
	if on {
		std.level.Set(slog.LevelDebug)
	} else {
		std.level.Set(slog.LevelInfo)
	}
}

// Init opens path for appending. After the first open, successful or not,
// Init does nothing until Reset.
func Init(path string) error {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.tried {
		return nil
	}
	return std.open(path)
}

func (s *state) open(path string) error {
	s.tried = true
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log %s: %w", path, err)
	}
	if old := s.out.swap(f); old != nil {
		old.Close()
	}
	if s.base == nil {
		s.base = slog.New(slog.NewTextHandler(&s.out, &slog.HandlerOptions{Level: &s.level}))
	}
	s.base.Info("log opened", "path", path, "level", s.level.Level())
	return nil
}

// WithComponent returns a logger that tags every record with component.
// When the log file cannot be opened the returned logger discards.
func WithComponent(component string) *slog.Logger {
	std.mu.Lock()
	defer std.mu.Unlock()
	if !std.tried {
		if err := std.open(DefaultLogPath); err != nil {
			fmt.Fprintf(os.Stderr, "shield: %v\n", err)
		}
	}
	if std.base == nil {
		return slog.New(slog.DiscardHandler)
	}
	return std.base.With(slog.String("component", component))
}

// Close closes the log file. Loggers handed out earlier stay usable; their
// records are dropped until a later Init opens a file again.
func Close() {
	std.mu.Lock()
	defer std.mu.Unlock()
	if f := std.out.swap(nil); f != nil {
		f.Close()
	}
}

// Reset closes the log and forgets the path so tests can Init again.
func Reset() {
	Close()
	std.mu.Lock()
	std.tried = false
	std.mu.Unlock()
	std.level.Set(slog.LevelInfo)
}

// Clear removes the log file at path, or DefaultLogPath when path is
// empty. removed is false when there was nothing to remove.
func Clear(path string) (removed bool, err error) {
	if path == "" {
		path = DefaultLogPath
	}
	switch err := os.Remove(path); {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, err
	}
}
