package depthai

import (
	"fmt"
	"sync"
)

// DataOutputQueue drains one device output stream. Consumers register
// callbacks; the device invokes them asynchronously per message.
type DataOutputQueue struct {
	name     string
	depth    int
	blocking bool

	mu        sync.Mutex
	callbacks []func(name string, msg any)
}

// Name returns the stream name this queue drains.
func (q *DataOutputQueue) Name() string { return q.name }

// AddCallback registers a per-message callback and returns its handle.
func (q *DataOutputQueue) AddCallback(cb func(name string, msg any)) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.callbacks = append(q.callbacks, cb)
	return len(q.callbacks) - 1
}

// push delivers a message to every registered callback. Called by the device.
func (q *DataOutputQueue) push(msg any) {
	q.mu.Lock()
	cbs := make([]func(string, any), len(q.callbacks))
	copy(cbs, q.callbacks)
	q.mu.Unlock()
	for _, cb := range cbs {
		cb(q.name, msg)
	}
}

// DataInputQueue carries host messages into one device input stream.
type DataInputQueue struct {
	name string

	mu       sync.Mutex
	sent     []any
	receiver func(msg any)
}

// Name returns the stream name this queue feeds.
func (q *DataInputQueue) Name() string { return q.name }

// Send queues a message for the device.
func (q *DataInputQueue) Send(msg any) error {
	if msg == nil {
		return fmt.Errorf("send on %q: nil message", q.name)
	}
	q.mu.Lock()
	q.sent = append(q.sent, msg)
	receiver := q.receiver
	q.mu.Unlock()
	if receiver != nil {
		receiver(msg)
	}
	return nil
}

// SetReceiver installs a device-side consumer for sent messages. The
// simulator uses this to react to control commands.
func (q *DataInputQueue) SetReceiver(fn func(msg any)) {
	q.mu.Lock()
	q.receiver = fn
	q.mu.Unlock()
}

// Sent returns a copy of every message sent so far.
func (q *DataInputQueue) Sent() []any {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]any, len(q.sent))
	copy(out, q.sent)
	return out
}
