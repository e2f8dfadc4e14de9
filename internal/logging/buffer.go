package logging

import (
	"sync"
	"time"
)

// LogEntry is one record kept for the log stream.
type LogEntry struct {
	Timestamp  time.Time      `json:"timestamp"`
	Level      string         `json:"level"`
	Module     string         `json:"module"`
	Message    string         `json:"message"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// RingBuffer keeps the most recent log entries. Safe for concurrent use.
type RingBuffer struct {
	mu   sync.RWMutex
	buf  []LogEntry
	next int
	full bool
}

// NewRingBuffer creates a buffer holding up to capacity entries.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer{buf: make([]LogEntry, capacity)}
}

// Write stores entry, replacing the oldest one when full.
func (rb *RingBuffer) Write(entry LogEntry) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.buf[rb.next] = entry
	rb.next++
	if rb.next == len(rb.buf) {
		rb.next = 0
		rb.full = true
	}
}

// ReadAll returns every stored entry, oldest first.
func (rb *RingBuffer) ReadAll() []LogEntry {
	return rb.ReadLast(0)
}

// ReadLast returns the n newest entries, oldest first. n <= 0 means all.
func (rb *RingBuffer) ReadLast(n int) []LogEntry {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	count := rb.countLocked()
	if n <= 0 || n > count {
		n = count
	}
	if n == 0 {
		return nil
	}

	out := make([]LogEntry, 0, n)
	start := (rb.next - n + len(rb.buf)) % len(rb.buf)
	for i := range n {
		out = append(out, rb.buf[(start+i)%len(rb.buf)])
	}
	return out
}

// Count returns the number of stored entries.
func (rb *RingBuffer) Count() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.countLocked()
}

func (rb *RingBuffer) countLocked() int {
	if rb.full {
		return len(rb.buf)
	}
	return rb.next
}
