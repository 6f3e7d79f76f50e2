package log

import (
	"sync"
	"time"
)

// Entry is a single captured log line.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
}

// Buffer is a fixed-size ring of recent log entries.
type Buffer struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	full    bool
}

var buffer *Buffer
var bufferOnce sync.Once

// GetBuffer returns the shared log buffer, creating it if necessary.
func GetBuffer() *Buffer {
	bufferOnce.Do(func() {
		buffer = NewBuffer(500)
	})
	return buffer
}

// NewBuffer creates a ring buffer that retains the last size entries.
func NewBuffer(size int) *Buffer {
	return &Buffer{
		entries: make([]Entry, size),
	}
}

// Add appends an entry, evicting the oldest once the buffer is full.
func (b *Buffer) Add(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[b.next] = e
	b.next++
	if b.next == len(b.entries) {
		b.next = 0
		b.full = true
	}
}

// Recent returns up to limit entries, oldest first. A non-positive limit
// returns everything retained.
func (b *Buffer) Recent(limit int) []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var ordered []Entry
	if b.full {
		ordered = append(ordered, b.entries[b.next:]...)
		ordered = append(ordered, b.entries[:b.next]...)
	} else {
		ordered = append(ordered, b.entries[:b.next]...)
	}

	if limit > 0 && len(ordered) > limit {
		ordered = ordered[len(ordered)-limit:]
	}
	return ordered
}
