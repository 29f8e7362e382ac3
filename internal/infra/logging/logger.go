// Package logging provides file-based logging for daytrack.
// Entries go to a single log file (<dataDir>/logs/daytrack.log) through a slog.Handler.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Attribute keys with a dedicated column in the log line.
const (
	TaskKey     = "task"
	CategoryKey = "category"
)

// Logger owns the log file and hands out slog handlers writing to it.
// Fields are ordered to minimize memory padding.
type Logger struct {
	file  *os.File
	path  string
	mu    sync.Mutex
	level slog.Level
}

// New creates a new Logger that appends to path.
// If path is empty, logging is disabled. The file is opened on first write.
func New(path string, level slog.Level) *Logger {
	return &Logger{
		path:  path,
		level: level,
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Handler returns a slog.Handler writing to the log file.
func (l *Logger) Handler() slog.Handler {
	return &handler{logger: l, category: "app"}
}

// Slog returns a slog.Logger writing to the log file.
func (l *Logger) Slog() *slog.Logger {
	return slog.New(l.Handler())
}

// ensureFile opens or returns the log file. Must be called with mu held.
func (l *Logger) ensureFile() (*os.File, error) {
	if l.file != nil {
		return l.file, nil
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.file = f
	return f, nil
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) write(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := l.ensureFile()
	if err != nil {
		return
	}
	_, _ = io.WriteString(f, entry)
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [task-1] [category] message
func formatLog(t time.Time, level slog.Level, taskID int, category, msg string) string {
	taskStr := "global"
	if taskID > 0 {
		taskStr = fmt.Sprintf("task-%d", taskID)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		taskStr,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

// handler implements slog.Handler on top of Logger.
// Fields are ordered to minimize memory padding.
type handler struct {
	logger   *Logger
	category string
	attrs    []string // Preformatted key=value pairs
	group    string
	taskID   int
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.logger.path != "" && level >= h.logger.level
}

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Enabled(ctx, r.Level) {
		return nil
	}

	taskID := h.taskID
	category := h.category
	parts := append([]string{}, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		switch {
		case h.group == "" && a.Key == TaskKey:
			taskID = attrInt(a, taskID)
		case h.group == "" && a.Key == CategoryKey:
			category = a.Value.String()
		default:
			parts = appendAttr(parts, h.group, a)
		}
		return true
	})

	msg := r.Message
	if len(parts) > 0 {
		msg += " " + strings.Join(parts, " ")
	}
	t := r.Time
	if t.IsZero() {
		t = time.Now()
	}
	h.logger.write(formatLog(t, r.Level, taskID, category, msg))
	return nil
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]string{}, h.attrs...)
	for _, a := range attrs {
		switch {
		case h.group == "" && a.Key == TaskKey:
			next.taskID = attrInt(a, next.taskID)
		case h.group == "" && a.Key == CategoryKey:
			next.category = a.Value.String()
		default:
			next.attrs = appendAttr(next.attrs, h.group, a)
		}
	}
	return &next
}

func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	next.group = name
	return &next
}

func attrInt(a slog.Attr, fallback int) int {
	switch a.Value.Kind() {
	case slog.KindInt64:
		return int(a.Value.Int64())
	case slog.KindUint64:
		return int(a.Value.Uint64())
	default:
		return fallback
	}
}

func appendAttr(parts []string, group string, a slog.Attr) []string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return parts
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			parts = appendAttr(parts, key, ga)
		}
		return parts
	}
	return append(parts, fmt.Sprintf("%s=%s", key, quote(a.Value.String())))
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
