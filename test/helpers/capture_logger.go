package helpers

import (
	"sync"
)

// LogEntry is one captured log line
type LogEntry struct {
	Level    string
	Message  string
	Metadata map[string]interface{}
}

// CaptureLogger records log lines for assertions
type CaptureLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewCaptureLogger creates an empty capture logger
func NewCaptureLogger() *CaptureLogger {
	return &CaptureLogger{}
}

// Log implements common.UnitLogger
func (l *CaptureLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: message, Metadata: metadata})
}

// Entries returns the captured lines at level, or all lines when level is empty
func (l *CaptureLogger) Entries(level string) []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []LogEntry
	for _, e := range l.entries {
		if level == "" || e.Level == level {
			out = append(out, e)
		}
	}
	return out
}
