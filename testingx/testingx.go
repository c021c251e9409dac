// Package testingx provides test helpers for genex packages.
//
// Overview:
//   - Responsibility: Recording logger, error-code assertions, fixture files
//   - Key Types: MockLogger, LogEntry
//   - Concurrency Model: MockLogger is safe for concurrent use
//   - Error Semantics: Failures are reported through testing.TB
//   - Performance Notes: In-memory only
//
// Usage:
//
//	logger := testingx.NewMockLogger(t)
//	testingx.AssertError(t, err, errors.CodeUnknownIdentifier)
package testingx

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.eggybyte.com/genex/core/errors"
	"go.eggybyte.com/genex/core/log"
)

// MockLogger records log calls for assertions.
type MockLogger struct {
	t       testing.TB
	mu      *sync.Mutex
	entries *[]LogEntry
	fields  []any
}

// LogEntry is one recorded call.
type LogEntry struct {
	Level   string
	Message string
	Fields  []any
	Error   error
}

// NewMockLogger creates an empty MockLogger.
func NewMockLogger(t testing.TB) *MockLogger {
	return &MockLogger{
		t:       t,
		mu:      &sync.Mutex{},
		entries: &[]LogEntry{},
	}
}

// With returns a logger sharing the same record store with kv prepended to every entry.
func (m *MockLogger) With(kv ...any) log.Logger {
	fields := append(append([]any{}, m.fields...), kv...)
	return &MockLogger{t: m.t, mu: m.mu, entries: m.entries, fields: fields}
}

// Debug records a debug entry.
func (m *MockLogger) Debug(msg string, kv ...any) { m.record("DEBUG", msg, nil, kv) }

// Info records an info entry.
func (m *MockLogger) Info(msg string, kv ...any) { m.record("INFO", msg, nil, kv) }

// Warn records a warning entry.
func (m *MockLogger) Warn(msg string, kv ...any) { m.record("WARN", msg, nil, kv) }

// Error records an error entry.
func (m *MockLogger) Error(err error, msg string, kv ...any) { m.record("ERROR", msg, err, kv) }

func (m *MockLogger) record(level, msg string, err error, kv []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.entries = append(*m.entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  append(append([]any{}, m.fields...), kv...),
		Error:   err,
	})
}

// Entries returns a copy of the recorded entries.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LogEntry(nil), *m.entries...)
}

// AssertLogged fails the test unless an entry with level and msg was recorded.
func (m *MockLogger) AssertLogged(level, msg string) {
	m.t.Helper()
	for _, entry := range m.Entries() {
		if entry.Level == level && entry.Message == msg {
			return
		}
	}
	m.t.Errorf("Expected log message not found: level=%s msg=%q", level, msg)
}

// AssertError fails the test unless err carries expectedCode.
func AssertError(t testing.TB, err error, expectedCode errors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error with code %s, got nil", expectedCode)
	}
	if code := errors.CodeOf(err); code != expectedCode {
		t.Errorf("Expected error code %s, got %s (%v)", expectedCode, code, err)
	}
}

// WriteFile writes content to name under dir, creating parents, and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", name, err)
	}
	return path
}
