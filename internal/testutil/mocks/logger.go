package mocks

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/pyprep/internal/ports"
)

// LogEntry is one recorded log call.
type LogEntry struct {
	Level   ports.Level
	Message string
	Fields  map[string]interface{}
}

// Logger records every message regardless of level.
type Logger struct {
	mu      *sync.Mutex
	entries *[]LogEntry
	fields  []ports.Field
	level   ports.Level
}

// NewLogger creates a recording Logger.
func NewLogger() *Logger {
	return &Logger{mu: &sync.Mutex{}, entries: &[]LogEntry{}, level: ports.LevelDebug}
}

func (l *Logger) record(level ports.Level, msg string, fields []ports.Field) {
	entry := LogEntry{Level: level, Message: msg, Fields: make(map[string]interface{})}
	for _, f := range l.fields {
		entry.Fields[f.Key] = f.Value
	}
	for _, f := range fields {
		entry.Fields[f.Key] = f.Value
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, entry)
}

// Debug records a debug message.
func (l *Logger) Debug(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelDebug, msg, fields)
}

// Info records an info message.
func (l *Logger) Info(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelInfo, msg, fields)
}

// Warn records a warning.
func (l *Logger) Warn(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelWarn, msg, fields)
}

// Error records an error.
func (l *Logger) Error(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelError, msg, fields)
}

// With returns a Logger sharing the same entries with extra fields.
func (l *Logger) With(fields ...ports.Field) ports.Logger {
	merged := make([]ports.Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &Logger{mu: l.mu, entries: l.entries, fields: merged, level: l.level}
}

// Level returns the configured level.
func (l *Logger) Level() ports.Level {
	return l.level
}

// SetLevel sets the level. Recording is unaffected.
func (l *Logger) SetLevel(level ports.Level) {
	l.level = level
}

// Entries returns every recorded entry.
func (l *Logger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(*l.entries))
	copy(out, *l.entries)
	return out
}

// Messages returns the messages logged at level.
func (l *Logger) Messages(level ports.Level) []string {
	var out []string
	for _, e := range l.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

var _ ports.Logger = (*Logger)(nil)
