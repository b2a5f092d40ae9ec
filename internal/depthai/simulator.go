package depthai

import (
	"context"
	"log/slog"
	"time"
)

// Simulator drives a started device with synthetic frames so the bridge can
// run without hardware attached. One goroutine per output stream.
type Simulator struct {
	device   *Device
	interval time.Duration
	logger   *slog.Logger
	cancel   context.CancelFunc
}

// NewSimulator creates a simulator pushing frames at the given interval.
func NewSimulator(device *Device, interval time.Duration, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = 33 * time.Millisecond
	}
	return &Simulator{
		device:   device,
		interval: interval,
		logger:   logger.With("component", "simulator"),
	}
}

// Start begins generating messages for every XLinkOut stream of the running
// pipeline. The producing node determines the message shape.
func (s *Simulator) Start() error {
	s.device.mu.Lock()
	p := s.device.pipeline
	s.device.mu.Unlock()
	if p == nil {
		return errNotRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for _, n := range p.Nodes() {
		xout, ok := n.(*XLinkOut)
		if !ok {
			continue
		}
		conns := p.ConnectionsTo(xout.ID())
		if len(conns) == 0 {
			continue
		}
		producer := p.Node(conns[0].OutputID)
		go s.run(ctx, xout.StreamName(), producer, conns[0].OutputName)
	}
	return nil
}

// Stop halts all generator goroutines.
func (s *Simulator) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Simulator) run(ctx context.Context, stream string, producer Node, port string) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var seq int64
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			seq++
			msg := s.synthesize(producer, port, seq, now)
			if msg == nil {
				continue
			}
			if err := s.device.Inject(stream, msg); err != nil {
				s.logger.Warn("inject failed", "stream", stream, "error", err)
				return
			}
		}
	}
}

func (s *Simulator) synthesize(producer Node, port string, seq int64, now time.Time) any {
	switch n := producer.(type) {
	case *IMUNode:
		return &IMUData{Packets: []IMUPacket{{
			Seq:       seq,
			Timestamp: now,
			Accel:     [3]float64{0, 0, 9.81},
			Rotation:  [4]float64{0, 0, 0, 1},
		}}}
	case *ColorCamera:
		res := n.Video
		switch port {
		case "still":
			res = n.Still
		case "preview":
			res = n.Preview
		case "isp":
			res = n.Isp
		}
		return grayFrame(n.Socket, res, seq, now, "bgr8")
	case *MonoCamera:
		return grayFrame(n.Socket, n.Resolution, seq, now, "mono8")
	case *StereoDepth:
		align := n.DepthAlign
		if align == SocketAuto {
			align = SocketRight
		}
		return grayFrame(align, Resolution{1280, 720}, seq, now, "mono16")
	default:
		return nil
	}
}

func grayFrame(socket CameraBoardSocket, res Resolution, seq int64, now time.Time, encoding string) *ImgFrame {
	return &ImgFrame{
		Seq:       seq,
		Timestamp: now,
		Instance:  socket,
		Width:     res.Width,
		Height:    res.Height,
		Encoding:  encoding,
		Data:      make([]byte, res.Width*res.Height),
	}
}
