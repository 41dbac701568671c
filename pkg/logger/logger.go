// Package logger provides the logging interface shared by the cookie jars and
// the cookiestore command. Cookie values must never be passed to a logger;
// names and jar locations are fine.
package logger

import (
	"fmt"
	"log"
)

// Logger is implemented by every log sink used in cookiestore.
type Logger interface {
	// Debug logs a diagnostic message. Sinks may drop it unless debug output
	// was requested.
	Debug(format string, args ...interface{})

	// Info logs an informational message (e.g. "imported 12 cookies").
	Info(format string, args ...interface{})

	// Warning logs a recoverable problem (e.g. a skipped malformed line).
	Warning(format string, args ...interface{})

	// Error logs a failure.
	Error(format string, args ...interface{})

	// Close releases resources held by the sink. Safe to call more than once.
	Close() error
}

// StandardLogger writes level-prefixed lines through a *log.Logger.
type StandardLogger struct {
	logger *log.Logger
	debug  bool
}

// NewStandardLogger wraps l. Debug messages are dropped unless debug is true.
func NewStandardLogger(l *log.Logger, debug bool) *StandardLogger {
	return &StandardLogger{logger: l, debug: debug}
}

func (s *StandardLogger) Debug(format string, args ...interface{}) {
	if !s.debug {
		return
	}
	s.logger.Printf("[DEBUG] "+format, args...)
}

func (s *StandardLogger) Info(format string, args ...interface{}) {
	s.logger.Printf("[INFO] "+format, args...)
}

func (s *StandardLogger) Warning(format string, args ...interface{}) {
	s.logger.Printf("[WARNING] "+format, args...)
}

func (s *StandardLogger) Error(format string, args ...interface{}) {
	s.logger.Printf("[ERROR] "+format, args...)
}

// Close is a no-op; the underlying writer belongs to the caller.
func (s *StandardLogger) Close() error {
	return nil
}

// NopLogger discards everything.
type NopLogger struct{}

func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

func (n *NopLogger) Debug(format string, args ...interface{})   {}
func (n *NopLogger) Info(format string, args ...interface{})    {}
func (n *NopLogger) Warning(format string, args ...interface{}) {}
func (n *NopLogger) Error(format string, args ...interface{})   {}
func (n *NopLogger) Close() error                               { return nil }

// MockLogger records formatted messages per level for assertions in tests.
type MockLogger struct {
	DebugCalls   []string
	InfoCalls    []string
	WarningCalls []string
	ErrorCalls   []string
	CloseCalled  bool
}

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) Debug(format string, args ...interface{}) {
	m.DebugCalls = append(m.DebugCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Info(format string, args ...interface{}) {
	m.InfoCalls = append(m.InfoCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Warning(format string, args ...interface{}) {
	m.WarningCalls = append(m.WarningCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Error(format string, args ...interface{}) {
	m.ErrorCalls = append(m.ErrorCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Close() error {
	m.CloseCalled = true
	return nil
}

var (
	_ Logger = (*StandardLogger)(nil)
	_ Logger = (*NopLogger)(nil)
	_ Logger = (*MockLogger)(nil)
)
