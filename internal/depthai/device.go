package depthai

import (
	"fmt"
	"sync"
)

// Device is an in-memory stand-in for a connected camera device. It owns the
// per-stream queues that appear once a pipeline is started and exposes the
// calibration EEPROM contents.
type Device struct {
	mxid  string
	calib CalibrationHandler

	mu       sync.Mutex
	running  bool
	pipeline *Pipeline
	outputs  map[string]*DataOutputQueue
	inputs   map[string]*DataInputQueue
}

// NewDevice creates a device with the given serial and calibration contents.
func NewDevice(mxid string, calib CalibrationHandler) *Device {
	return &Device{
		mxid:    mxid,
		calib:   calib,
		outputs: make(map[string]*DataOutputQueue),
		inputs:  make(map[string]*DataInputQueue),
	}
}

// MxID returns the device serial identifier.
func (d *Device) MxID() string { return d.mxid }

// ReadCalibration returns the device calibration handler.
func (d *Device) ReadCalibration() CalibrationHandler { return d.calib }

// Running reports whether a pipeline has been started on the device.
func (d *Device) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Start uploads the pipeline and creates the stream queues. The graph must
// not change shape afterwards.
func (d *Device) Start(p *Pipeline) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return fmt.Errorf("device %s: pipeline already running", d.mxid)
	}
	for _, n := range p.Nodes() {
		switch n := n.(type) {
		case *XLinkOut:
			if _, dup := d.outputs[n.StreamName()]; dup {
				return fmt.Errorf("device %s: duplicate output stream %q", d.mxid, n.StreamName())
			}
			d.outputs[n.StreamName()] = &DataOutputQueue{name: n.StreamName()}
		case *XLinkIn:
			if _, dup := d.inputs[n.StreamName()]; dup {
				return fmt.Errorf("device %s: duplicate input stream %q", d.mxid, n.StreamName())
			}
			d.inputs[n.StreamName()] = &DataInputQueue{name: n.StreamName()}
		}
	}
	d.pipeline = p
	d.running = true
	return nil
}

// OutputQueue returns the queue draining the named output stream. Depth and
// blocking mirror the device API; the in-memory device only records them.
func (d *Device) OutputQueue(name string, depth int, blocking bool) (*DataOutputQueue, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return nil, fmt.Errorf("device %s: not running", d.mxid)
	}
	q, ok := d.outputs[name]
	if !ok {
		return nil, fmt.Errorf("device %s: unknown output stream %q", d.mxid, name)
	}
	q.depth = depth
	q.blocking = blocking
	return q, nil
}

// InputQueue returns the queue feeding the named input stream.
func (d *Device) InputQueue(name string) (*DataInputQueue, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return nil, fmt.Errorf("device %s: not running", d.mxid)
	}
	q, ok := d.inputs[name]
	if !ok {
		return nil, fmt.Errorf("device %s: unknown input stream %q", d.mxid, name)
	}
	return q, nil
}

// Inject delivers a device-originated message to the named output stream's
// callbacks. Drives the simulator and tests.
func (d *Device) Inject(stream string, msg any) error {
	d.mu.Lock()
	q, ok := d.outputs[stream]
	d.mu.Unlock()
	if !ok {
		return fmt.Errorf("device %s: unknown output stream %q", d.mxid, stream)
	}
	q.push(msg)
	return nil
}
