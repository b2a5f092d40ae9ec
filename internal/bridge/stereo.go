package bridge

import (
	"fmt"

	"github.com/jdavidberger/depthai-ros/internal/convert"
	"github.com/jdavidberger/depthai-ros/internal/depthai"
	"github.com/jdavidberger/depthai-ros/internal/events"
	"github.com/jdavidberger/depthai-ros/internal/publish"
)

// Depth output intrinsics are reported at the matcher's working resolution.
const (
	stereoRefWidth  = 1280
	stereoRefHeight = 720
)

// mapStereoDepth claims every output of a StereoDepth producer. Unknown port
// names still count as claimed: the variant matched, only the port is
// unrecognized.
func (p *PipelinePublisher) mapStereoDepth(xout *depthai.XLinkOut, producer depthai.Node, port string) (bool, error) {
	stereo, ok := producer.(*depthai.StereoDepth)
	if !ok {
		return false, nil
	}

	queue, err := p.device.OutputQueue(xout.StreamName(), p.queueDepth, false)
	if err != nil {
		return true, fmt.Errorf("stereo output queue: %w", err)
	}

	align := stereo.DepthAlign
	if align == depthai.SocketAuto {
		align = depthai.SocketRight
	}
	frame := p.frameName(align)

	depthInfo, err := convert.CalibrationToCameraInfo(p.calib, align, stereoRefWidth, stereoRefHeight, frame)
	if err != nil {
		p.logger.Warn("no depth intrinsics", "socket", align.String(), "error", err)
		depthInfo = nil
	}

	switch port {
	case "depth":
		p.addImagePublisher(queue, "stereo/depth", convert.NewImageConverter(frame, true), depthInfo)

	case "disparity":
		conv := convert.NewDisparityConverter(frame,
			p.disparity.FocalLength, p.disparity.Baseline,
			p.disparity.MinDepth, p.disparity.MaxDepth)
		// The matcher search range comes from the defaults the stereo
		// config server captured during setup.
		cfg := stereo.InitialConfig
		if p.stereoServer != nil {
			cfg = p.stereoServer.Current()
		}
		conv.SetSearchRange(cfg.MaxDisparity(), cfg.Subpixel)

		pub := publish.New(queue, p.conn, "stereo/disparity", conv.Convert, p.queueDepth, depthInfo, p.logger)
		p.keep(conv)
		p.publishers = append(p.publishers, pub)
		pub.StartPublishing()
		p.bus.Publish(events.PublisherCreatedEvent{
			Channel: "stereo/disparity", Stream: queue.Name(), FrameID: frame,
		})
		p.logger.Info("publisher created", "channel", "stereo/disparity", "stream", queue.Name())

	case "confidenceMap":
		p.addImagePublisher(queue, "stereo/confidenceMap", convert.NewImageConverter(frame, true), depthInfo)

	case "rectifiedLeft", "rectifiedRight", "syncedLeft", "syncedRight":
		return true, p.mapStereoSide(stereo, queue, port)

	default:
		p.logger.Warn("unrecognized StereoDepth output", "port", port, "stream", xout.StreamName())
	}
	return true, nil
}

// mapStereoSide publishes the rectified or synced stream of one side of the
// stereo pair. Intrinsics come from the actual mono camera feeding that
// side, resolved through the graph, so its true resolution is used rather
// than the stereo default.
func (p *PipelinePublisher) mapStereoSide(stereo *depthai.StereoDepth, queue *depthai.DataOutputQueue, port string) error {
	side := "right"
	if port == "rectifiedLeft" || port == "syncedLeft" {
		side = "left"
	}

	mono := p.findStereoInput(stereo, side)
	if mono == nil {
		p.logger.Warn("could not resolve stereo input source", "side", side)
		return nil
	}

	channel := side + "/image_raw"
	if port == "rectifiedLeft" || port == "rectifiedRight" {
		channel = side + "/image_rect"
	}

	frame := p.framePrefix + side + "_camera_optical_frame"
	info, err := convert.CalibrationToCameraInfo(p.calib, mono.Socket, mono.Resolution.Width, mono.Resolution.Height, frame)
	if err != nil {
		p.logger.Warn("no intrinsics for stereo side", "side", side, "socket", mono.Socket.String(), "error", err)
		info = nil
	}

	p.addImagePublisher(queue, channel, convert.NewImageConverter(frame, true), info)
	return nil
}

// findStereoInput resolves the mono camera feeding the named stereo input
// port ("left" or "right") through the pipeline's connection map.
func (p *PipelinePublisher) findStereoInput(stereo *depthai.StereoDepth, side string) *depthai.MonoCamera {
	for _, conn := range p.pipeline.ConnectionsTo(stereo.ID()) {
		if conn.InputName != side {
			continue
		}
		if mono, ok := p.pipeline.Node(conn.OutputID).(*depthai.MonoCamera); ok {
			return mono
		}
	}
	return nil
}
