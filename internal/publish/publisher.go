// Package publish bridges device output queues onto NATS channels.
package publish

import (
	"log/slog"
	"sync"

	"github.com/jdavidberger/depthai-ros/internal/convert"
	"github.com/jdavidberger/depthai-ros/internal/depthai"
	"github.com/jdavidberger/depthai-ros/internal/metrics"
	"github.com/jdavidberger/depthai-ros/internal/natsio"
)

// ConvertFn turns a device-native message into zero or more publishable
// messages. Converter methods bind directly to this type.
type ConvertFn func(msg any) ([]convert.Message, error)

// BridgePublisher drains one device output queue, converts each message and
// publishes it on a named channel. Once started it runs until teardown; the
// bridge keeps it (and its converter) alive for the system's lifetime.
type BridgePublisher struct {
	queue      *depthai.DataOutputQueue
	conn       natsio.Conn
	channel    string
	convertFn  ConvertFn
	depth      int
	cameraInfo *convert.CameraInfo
	logger     *slog.Logger

	mu      sync.Mutex
	started bool
}

// New creates a publisher. cameraInfo may be nil for channels without
// intrinsics (imu).
func New(queue *depthai.DataOutputQueue, conn natsio.Conn, channel string, convertFn ConvertFn, depth int, cameraInfo *convert.CameraInfo, logger *slog.Logger) *BridgePublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &BridgePublisher{
		queue:      queue,
		conn:       conn,
		channel:    channel,
		convertFn:  convertFn,
		depth:      depth,
		cameraInfo: cameraInfo,
		logger:     logger.With("component", "publisher", "channel", channel),
	}
}

// Channel returns the channel name this publisher emits on.
func (p *BridgePublisher) Channel() string { return p.channel }

// CameraInfo returns the intrinsics record attached to this channel, if any.
func (p *BridgePublisher) CameraInfo() *convert.CameraInfo { return p.cameraInfo }

// StartPublishing registers the queue callback. Safe to call once; further
// calls are no-ops.
func (p *BridgePublisher) StartPublishing() {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	p.queue.AddCallback(p.onMessage)
	metrics.PublishersLive.Inc()
	p.logger.Debug("publisher started", "stream", p.queue.Name(), "depth", p.depth)
}

func (p *BridgePublisher) onMessage(_ string, msg any) {
	msgs, err := p.convertFn(msg)
	if err != nil {
		metrics.ConvertErrors.WithLabelValues(p.channel).Inc()
		p.logger.Warn("conversion failed", "error", err)
		return
	}

	subject := natsio.ChannelSubject(p.channel)
	for _, m := range msgs {
		data, err := m.Marshal()
		if err != nil {
			metrics.ConvertErrors.WithLabelValues(p.channel).Inc()
			p.logger.Warn("marshal failed", "error", err)
			continue
		}
		if err := p.conn.Publish(subject, data); err != nil {
			p.logger.Warn("publish failed", "error", err)
			continue
		}
		metrics.FramesPublished.WithLabelValues(p.channel).Inc()
	}

	if p.cameraInfo != nil {
		if data, err := p.cameraInfo.Marshal(); err == nil {
			_ = p.conn.Publish(natsio.CameraInfoSubject(p.channel), data)
		}
	}
}
