package logging

import "sync"

// DefaultBufferSize is the number of entries a LogBuffer keeps by default.
const DefaultBufferSize = 100

// LogBuffer keeps the most recent log entries for display in the TUI.
// It is safe for concurrent use.
type LogBuffer struct {
	mu      sync.RWMutex
	entries []LogEntry
	size    int
}

// NewLogBuffer creates a buffer holding up to size entries.
func NewLogBuffer(size int) *LogBuffer {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &LogBuffer{
		entries: make([]LogEntry, 0, size),
		size:    size,
	}
}

// Add appends entry, dropping the oldest entry when full.
func (b *LogBuffer) Add(entry LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) == b.size {
		copy(b.entries, b.entries[1:])
		b.entries = b.entries[:b.size-1]
	}
	b.entries = append(b.entries, entry)
}

// Entries returns a copy of all entries, oldest first.
func (b *LogBuffer) Entries() []LogEntry {
	return b.Last(b.Len())
}

// Last returns up to n of the newest entries, oldest first.
func (b *LogBuffer) Last(n int) []LogEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n > len(b.entries) {
		n = len(b.entries)
	}
	if n <= 0 {
		return []LogEntry{}
	}
	out := make([]LogEntry, n)
	copy(out, b.entries[len(b.entries)-n:])
	return out
}

// Latest returns the newest entry at or above min.
func (b *LogBuffer) Latest(min Level) (LogEntry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for i := len(b.entries) - 1; i >= 0; i-- {
		if b.entries[i].Level >= min {
			return b.entries[i], true
		}
	}
	return LogEntry{}, false
}

// Len returns the number of buffered entries.
func (b *LogBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Clear removes all entries.
func (b *LogBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = b.entries[:0]
}
