// Package bridge is the core of the system: it inspects a device pipeline
// graph, wires inbound control endpoints before the pipeline starts, and
// afterwards instantiates the right converter and publishing channel for
// every externally-visible output, dispatching on the runtime type of the
// producing node and the name of the output port.
package bridge

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/jdavidberger/depthai-ros/internal/convert"
	"github.com/jdavidberger/depthai-ros/internal/depthai"
	"github.com/jdavidberger/depthai-ros/internal/events"
	"github.com/jdavidberger/depthai-ros/internal/natsio"
	"github.com/jdavidberger/depthai-ros/internal/publish"
)

// DisparityDefaults parameterize the disparity converter. These are
// configuration defaults approximating an OAK-D, not values derived from
// calibration; override them for other hardware.
type DisparityDefaults struct {
	FocalLength float64 // pixels
	Baseline    float64 // centimeters
	MinDepth    float64 // millimeters
	MaxDepth    float64 // millimeters
}

// Option configures a PipelinePublisher.
type Option func(*PipelinePublisher)

// WithFramePrefix overrides the default "dai_<mxid>_" frame name prefix.
func WithFramePrefix(prefix string) Option {
	return func(p *PipelinePublisher) { p.framePrefix = prefix }
}

// WithFrameNames overrides the default socket-to-frame-name mapping.
func WithFrameNames(names map[depthai.CameraBoardSocket]string) Option {
	return func(p *PipelinePublisher) { p.frameNames = names }
}

// WithDisparityDefaults overrides the disparity converter constants.
func WithDisparityDefaults(d DisparityDefaults) Option {
	return func(p *PipelinePublisher) { p.disparity = d }
}

// WithQueueDepth sets the device queue depth used for every publisher.
func WithQueueDepth(depth int) Option {
	return func(p *PipelinePublisher) { p.queueDepth = depth }
}

// WithEventBus attaches an event bus for bridge lifecycle events.
func WithEventBus(bus *events.Bus) Option {
	return func(p *PipelinePublisher) { p.bus = bus }
}

// WithLogger sets the bridge logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *PipelinePublisher) { p.logger = logger }
}

// PipelinePublisher owns everything created for one device: converters,
// publishers and reconfiguration servers live until the process exits.
type PipelinePublisher struct {
	conn     natsio.Conn
	device   *depthai.Device
	pipeline *depthai.Pipeline
	calib    depthai.CalibrationHandler

	framePrefix string
	frameNames  map[depthai.CameraBoardSocket]string
	disparity   DisparityDefaults
	queueDepth  int
	bus         *events.Bus
	logger      *slog.Logger

	mappers []mapperFn

	// Lifetime registry. Append-only during setup, read-only afterwards.
	keepAlive     []any
	converters    []*convert.ImageConverter
	publishers    []*publish.BridgePublisher
	cameraServers map[depthai.CameraBoardSocket]*CameraControlServer
	stereoServer  *StereoConfigServer
}

// New builds the full publishing system for a device and pipeline. The
// phases run in a fixed order: control-input wiring (graph mutation, only
// valid before start), pipeline start, reconfiguration-server setup, output
// mapping. Output mapping needs the running device's queues and reads
// stereo defaults published by the server setup, so the ordering is
// structural, not conventional.
func New(conn natsio.Conn, device *depthai.Device, pipeline *depthai.Pipeline, opts ...Option) (*PipelinePublisher, error) {
	p := &PipelinePublisher{
		conn:     conn,
		device:   device,
		pipeline: pipeline,
		disparity: DisparityDefaults{
			FocalLength: 880,
			Baseline:    7.5,
			MinDepth:    20,
			MaxDepth:    2000,
		},
		queueDepth:    30,
		logger:        slog.Default(),
		cameraServers: make(map[depthai.CameraBoardSocket]*CameraControlServer),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "bridge", "device", device.MxID())
	if p.framePrefix == "" {
		p.framePrefix = "dai_" + device.MxID() + "_"
	}
	if p.frameNames == nil {
		p.frameNames = DefaultFrameNames()
	}
	p.calib = device.ReadCalibration()
	p.mappers = []mapperFn{p.mapStereoDepth, p.mapIMU, p.mapColorCamera, p.mapMonoCamera}

	p.wireControlInputs()

	if !device.Running() {
		if err := device.Start(pipeline); err != nil {
			return nil, fmt.Errorf("start pipeline: %w", err)
		}
	}

	if err := p.setupControlServers(); err != nil {
		return nil, err
	}
	if err := p.mapOutputs(); err != nil {
		return nil, err
	}
	return p, nil
}

// Publishers returns every publisher created by the output-mapping pass.
func (p *PipelinePublisher) Publishers() []*publish.BridgePublisher {
	return p.publishers
}

// CameraServer returns the reconfiguration server for a camera socket, or
// nil when the node has no live control path.
func (p *PipelinePublisher) CameraServer(socket depthai.CameraBoardSocket) *CameraControlServer {
	return p.cameraServers[socket]
}

// CameraServers returns all camera reconfiguration servers in socket order.
func (p *PipelinePublisher) CameraServers() []*CameraControlServer {
	out := make([]*CameraControlServer, 0, len(p.cameraServers))
	for _, s := range p.cameraServers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Socket() < out[j].Socket() })
	return out
}

// StereoServer returns the stereo matcher reconfiguration server, or nil.
func (p *PipelinePublisher) StereoServer() *StereoConfigServer {
	return p.stereoServer
}

func (p *PipelinePublisher) keep(obj any) {
	p.keepAlive = append(p.keepAlive, obj)
}

// controlKey is the external identity of one control-capable node:
// <prefix><socket>.
func (p *PipelinePublisher) controlKey(socket depthai.CameraBoardSocket) string {
	return p.framePrefix + socket.String()
}
