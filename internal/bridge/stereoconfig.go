package bridge

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/jdavidberger/depthai-ros/internal/depthai"
	"github.com/jdavidberger/depthai-ros/internal/metrics"
	"github.com/jdavidberger/depthai-ros/internal/natsio"
)

// StereoConfigServer is the reconfiguration bridge for the stereo matcher.
// Unlike camera nodes it rides a single shared device channel and replaces
// the whole configuration per push.
type StereoConfigServer struct {
	key    string
	conn   natsio.Conn
	queue  *depthai.DataInputQueue
	logger *slog.Logger

	mu      sync.Mutex
	current depthai.RawStereoDepthConfig

	sub *nats.Subscription
}

func newStereoConfigServer(key string, initial depthai.RawStereoDepthConfig, conn natsio.Conn, queue *depthai.DataInputQueue, logger *slog.Logger) (*StereoConfigServer, error) {
	s := &StereoConfigServer{
		key:     key,
		conn:    conn,
		queue:   queue,
		current: initial,
		logger:  logger.With("control", key),
	}
	sub, err := conn.Subscribe(natsio.ControlSubject(key), s.handleConfig)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", natsio.ControlSubject(key), err)
	}
	s.sub = sub
	return s, nil
}

// Key returns the external control identity.
func (s *StereoConfigServer) Key() string { return s.key }

// Current returns the live matcher configuration snapshot.
func (s *StereoConfigServer) Current() depthai.RawStereoDepthConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Apply replaces the snapshot and sends the full configuration to the
// device's shared stereo config queue.
func (s *StereoConfigServer) Apply(cfg depthai.RawStereoDepthConfig) error {
	// The lock spans the device send and the state republish: configs
	// must reach the queue in snapshot order.
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = cfg

	if err := s.queue.Send(cfg); err != nil {
		return fmt.Errorf("send stereo config: %w", err)
	}
	metrics.ControlUpdates.WithLabelValues(s.key).Inc()

	if data, err := json.Marshal(cfg); err == nil {
		_ = s.conn.Publish(natsio.StateSubject(s.key), data)
	}
	s.logger.Debug("stereo config applied",
		"confidence", cfg.ConfidenceThreshold, "subpixel", cfg.Subpixel)
	return nil
}

func (s *StereoConfigServer) handleConfig(msg *nats.Msg) {
	cfg := s.Current()
	if err := json.Unmarshal(msg.Data, &cfg); err != nil {
		s.logger.Warn("bad stereo config push", "error", err)
		return
	}
	if err := s.Apply(cfg); err != nil {
		s.logger.Warn("stereo config push failed", "error", err)
	}
}
