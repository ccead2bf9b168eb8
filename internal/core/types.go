package core

import (
	"sync"
	"time"
)

// LogEntry is one captured console call.
type LogEntry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Result reports one Execute / RunTests run.
type Result struct {
	// Value holds the JSON-encoded evaluation result when the run produced
	// one. Empty for plain script execution.
	Value string `json:"value,omitempty"`

	// Logs are the console entries captured during the run, in order.
	Logs []LogEntry `json:"logs,omitempty"`

	// Error is the message of the uncaught error that ended the run, empty
	// on success.
	Error string `json:"error,omitempty"`

	// Tests is set by RunTests.
	Tests *TestSummary `json:"tests,omitempty"`

	Duration time.Duration `json:"duration"`
}

// TestSummary reports a test-runner pass.
type TestSummary struct {
	Passed   int      `json:"passed"`
	Failed   int      `json:"failed"`
	Ignored  int      `json:"ignored"`
	Failures []string `json:"failures,omitempty"`
}

// LogBuffer collects console output from inside the engine. Safe for
// concurrent use; entries past the cap are dropped with a final marker.
type LogBuffer struct {
	mu      sync.Mutex
	entries []LogEntry
	max     int
	dropped bool
}

func NewLogBuffer(max int) *LogBuffer {
	if max <= 0 {
		max = defaultMaxEntries
	}
	return &LogBuffer{max: max}
}

// Add appends an entry, dropping it if the buffer is full.
func (b *LogBuffer) Add(level, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) >= b.max {
		if !b.dropped {
			b.entries = append(b.entries, LogEntry{Level: "warn", Message: "log buffer full, further entries dropped"})
			b.dropped = true
		}
		return
	}
	b.entries = append(b.entries, LogEntry{Level: level, Message: message})
}

// Drain returns the collected entries and resets the buffer.
func (b *LogBuffer) Drain() []LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.entries
	b.entries = nil
	b.dropped = false
	return out
}
