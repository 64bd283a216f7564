package logger

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// TestLogger records entries in memory. Loggers derived through WithFields
// share the same record, so assertions can be made on the root instance.
type TestLogger struct {
	record *entryRecord
	fields Fields
}

type entryRecord struct {
	mu      sync.RWMutex
	entries []TestLogEntry
}

type TestLogEntry struct {
	Level   string
	Message string
	Fields  Fields
}

func NewTestLogger() *TestLogger {
	return &TestLogger{
		record: &entryRecord{},
		fields: Fields{},
	}
}

func (l *TestLogger) log(level string, args []any) {
	fields := make(Fields, len(l.fields))
	maps.Copy(fields, l.fields)

	l.record.mu.Lock()
	defer l.record.mu.Unlock()
	l.record.entries = append(l.record.entries, TestLogEntry{
		Level:   level,
		Message: fmt.Sprint(args...),
		Fields:  fields,
	})
}

func (l *TestLogger) Trace(args ...any) { l.log(LevelTrace, args) }
func (l *TestLogger) Debug(args ...any) { l.log(LevelDebug, args) }
func (l *TestLogger) Info(args ...any)  { l.log(LevelInfo, args) }
func (l *TestLogger) Warn(args ...any)  { l.log(LevelWarn, args) }
func (l *TestLogger) Error(args ...any) { l.log(LevelError, args) }

// Fatal records the entry without exiting.
func (l *TestLogger) Fatal(args ...any) { l.log(LevelFatal, args) }

func (l *TestLogger) WithFields(fields Fields) Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	maps.Copy(merged, l.fields)
	maps.Copy(merged, fields)
	return &TestLogger{record: l.record, fields: merged}
}

func (l *TestLogger) WithField(key string, value any) Logger {
	return l.WithFields(Fields{key: value})
}

func (l *TestLogger) WithError(err error) Logger {
	return l.WithFields(Fields{"error": err})
}

// Entries returns a snapshot of everything recorded so far.
func (l *TestLogger) Entries() []TestLogEntry {
	l.record.mu.RLock()
	defer l.record.mu.RUnlock()
	return slices.Clone(l.record.entries)
}

// Messages returns the messages recorded at level, oldest first.
func (l *TestLogger) Messages(level string) []string {
	var messages []string
	for _, e := range l.Entries() {
		if e.Level == level {
			messages = append(messages, e.Message)
		}
	}
	return messages
}

func (l *TestLogger) HasEntry(level, message string) bool {
	_, ok := l.Find(level, message)
	return ok
}

// Find returns the first entry with the given level and message.
func (l *TestLogger) Find(level, message string) (TestLogEntry, bool) {
	for _, e := range l.Entries() {
		if e.Level == level && e.Message == message {
			return e, true
		}
	}
	return TestLogEntry{}, false
}

func (l *TestLogger) Reset() {
	l.record.mu.Lock()
	defer l.record.mu.Unlock()
	l.record.entries = nil
}

var _ Logger = (*TestLogger)(nil)
