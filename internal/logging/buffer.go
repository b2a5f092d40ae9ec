package logging

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// LogEntry is a single log line stored in the ring buffer.
type LogEntry struct {
	Timestamp  time.Time      `json:"timestamp"`
	Level      string         `json:"level"`
	Module     string         `json:"module"`
	Message    string         `json:"message"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// RingBuffer is a thread-safe circular buffer of recent log entries.
type RingBuffer struct {
	entries []LogEntry
	size    int
	head    int
	count   int
	mu      sync.RWMutex
}

// NewRingBuffer creates a ring buffer with the given capacity.
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{entries: make([]LogEntry, size), size: size}
}

// Write adds an entry, overwriting the oldest when full.
func (rb *RingBuffer) Write(entry LogEntry) {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.entries[rb.head] = entry
	rb.head = (rb.head + 1) % rb.size
	if rb.count < rb.size {
		rb.count++
	}
}

// ReadAll returns all entries in chronological order.
func (rb *RingBuffer) ReadAll() []LogEntry {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	if rb.count == 0 {
		return nil
	}
	result := make([]LogEntry, rb.count)
	if rb.count < rb.size {
		copy(result, rb.entries[:rb.count])
	} else {
		n := copy(result, rb.entries[rb.head:])
		copy(result[n:], rb.entries[:rb.head])
	}
	return result
}

// Count returns the number of stored entries.
func (rb *RingBuffer) Count() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count
}

// bufferHandler is a slog.Handler that records entries into a RingBuffer.
type bufferHandler struct {
	buffer *RingBuffer
	level  slog.Leveler
	attrs  []slog.Attr
}

func newBufferHandler(buffer *RingBuffer, level slog.Leveler) *bufferHandler {
	return &bufferHandler{buffer: buffer, level: level}
}

func (h *bufferHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *bufferHandler) Handle(_ context.Context, r slog.Record) error {
	entry := LogEntry{
		Timestamp:  r.Time,
		Level:      r.Level.String(),
		Message:    r.Message,
		Attributes: make(map[string]any),
	}
	record := func(a slog.Attr) {
		if a.Key == "module" {
			entry.Module = a.Value.String()
			return
		}
		entry.Attributes[a.Key] = a.Value.Any()
	}
	for _, a := range h.attrs {
		record(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		record(a)
		return true
	})
	if len(entry.Attributes) == 0 {
		entry.Attributes = nil
	}
	h.buffer.Write(entry)
	return nil
}

func (h *bufferHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &bufferHandler{buffer: h.buffer, level: h.level, attrs: merged}
}

func (h *bufferHandler) WithGroup(string) slog.Handler { return h }
