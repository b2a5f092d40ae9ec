// Package depthai models the device side of the bridge: the pipeline graph
// of typed processing nodes, the device with its per-stream queues, and the
// calibration data. The in-memory Device plus Simulator let the rest of the
// system run and be tested without hardware attached.
package depthai

import "errors"

var errNotRunning = errors.New("device pipeline not running")
