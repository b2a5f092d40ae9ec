package bridge

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/jdavidberger/depthai-ros/internal/depthai"
	"github.com/jdavidberger/depthai-ros/internal/events"
	"github.com/jdavidberger/depthai-ros/internal/metrics"
	"github.com/jdavidberger/depthai-ros/internal/natsio"
)

// RegionOfInterest is the rectangle pushed on ae_bbox/af_bbox subjects,
// carrying center plus size.
type RegionOfInterest struct {
	CenterX int `json:"cx"`
	CenterY int `json:"cy"`
	Width   int `json:"width"`
	Height  int `json:"height"`
}

// topLeft converts the center+size rectangle into the device's top-left
// anchored region.
func (r RegionOfInterest) topLeft() depthai.Region {
	return depthai.Region{
		X:      r.CenterX - r.Width/2,
		Y:      r.CenterY - r.Height/2,
		Width:  r.Width,
		Height: r.Height,
	}
}

// CameraControlServer is the reconfiguration bridge for one camera node. It
// owns the live configuration snapshot and translates external pushes into
// control commands on the node's device input queue. Three asynchronous
// triggers feed it (full config push, AE region, AF region); every update
// funnels through Apply, which serializes them.
type CameraControlServer struct {
	key    string
	socket depthai.CameraBoardSocket
	conn   natsio.Conn
	queue  *depthai.DataInputQueue
	bus    *events.Bus
	logger *slog.Logger

	mu      sync.Mutex
	current depthai.CameraControl

	subs []*nats.Subscription
}

func newCameraControlServer(key string, socket depthai.CameraBoardSocket, conn natsio.Conn, queue *depthai.DataInputQueue, bus *events.Bus, logger *slog.Logger) (*CameraControlServer, error) {
	s := &CameraControlServer{
		key:    key,
		socket: socket,
		conn:   conn,
		queue:  queue,
		bus:    bus,
		logger: logger.With("control", key),
	}

	subjects := map[string]nats.MsgHandler{
		natsio.ControlSubject(key):      s.handleControl,
		natsio.AutoExposureSubject(key): s.handleRegion("ae"),
		natsio.AutoFocusSubject(key):    s.handleRegion("af"),
	}
	for subject, handler := range subjects {
		sub, err := conn.Subscribe(subject, handler)
		if err != nil {
			return nil, fmt.Errorf("subscribe %s: %w", subject, err)
		}
		s.subs = append(s.subs, sub)
	}
	return s, nil
}

// Key returns the external control identity: <prefix><socket>.
func (s *CameraControlServer) Key() string { return s.key }

// Socket returns the camera socket this server controls.
func (s *CameraControlServer) Socket() depthai.CameraBoardSocket { return s.socket }

// Current returns the live configuration snapshot.
func (s *CameraControlServer) Current() depthai.CameraControl {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Apply merges the flagged fields of update into the snapshot, sends a
// command restricted to exactly those fields to the device, and republishes
// the merged snapshot so external readers see the new state.
func (s *CameraControlServer) Apply(update depthai.CameraControl) error {
	if update.Fields == 0 {
		return nil
	}

	// The lock spans the device send and the state republish: commands
	// must reach the queue in snapshot order.
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := s.current.Merge(update)
	cmd := s.current.Command(fields)

	if err := s.queue.Send(cmd); err != nil {
		return fmt.Errorf("send camera control for %s: %w", s.key, err)
	}
	metrics.ControlUpdates.WithLabelValues(s.key).Inc()

	if data, err := json.Marshal(s.current); err == nil {
		_ = s.conn.Publish(natsio.StateSubject(s.key), data)
	}

	s.bus.Publish(events.ControlAppliedEvent{Key: s.key, Socket: s.socket, Fields: fields})
	s.logger.Debug("camera control applied", "fields", fields)
	return nil
}

func (s *CameraControlServer) handleControl(msg *nats.Msg) {
	var update depthai.CameraControl
	if err := json.Unmarshal(msg.Data, &update); err != nil {
		s.logger.Warn("bad camera control push", "error", err)
		return
	}
	if err := s.Apply(update); err != nil {
		s.logger.Warn("camera control push failed", "error", err)
	}
}

// handleRegion translates a region-of-interest push into a partial
// configuration update for the matching field group.
func (s *CameraControlServer) handleRegion(kind string) nats.MsgHandler {
	return func(msg *nats.Msg) {
		var roi RegionOfInterest
		if err := json.Unmarshal(msg.Data, &roi); err != nil {
			s.logger.Warn("bad region push", "kind", kind, "error", err)
			return
		}
		if err := s.ApplyRegion(kind, roi); err != nil {
			s.logger.Warn("region push failed", "kind", kind, "error", err)
		}
	}
}

// ApplyRegion merges an auto-exposure or auto-focus target rectangle into
// the snapshot and sends only the affected field group to the device.
func (s *CameraControlServer) ApplyRegion(kind string, roi RegionOfInterest) error {
	region := roi.topLeft()
	update := depthai.CameraControl{}
	switch kind {
	case "ae":
		update.Fields = depthai.FieldAERegion
		update.AERegion = region
	case "af":
		update.Fields = depthai.FieldAFRegion
		update.AFRegion = region
	default:
		return fmt.Errorf("unknown region kind %q", kind)
	}

	s.bus.Publish(events.RegionOfInterestEvent{Key: s.key, Socket: s.socket, Kind: kind, Region: region})
	return s.Apply(update)
}
