package bridge

import (
	"fmt"

	"github.com/jdavidberger/depthai-ros/internal/convert"
	"github.com/jdavidberger/depthai-ros/internal/depthai"
)

// mapColorCamera claims color camera outputs. The port name selects the
// resolution used for intrinsics; an unknown port falls back to a default
// with a warning rather than failing.
func (p *PipelinePublisher) mapColorCamera(xout *depthai.XLinkOut, producer depthai.Node, port string) (bool, error) {
	cam, ok := producer.(*depthai.ColorCamera)
	if !ok {
		return false, nil
	}

	queue, err := p.device.OutputQueue(xout.StreamName(), p.queueDepth, false)
	if err != nil {
		return true, fmt.Errorf("color camera output queue: %w", err)
	}

	res := depthai.Resolution{Width: 1280, Height: 720}
	switch port {
	case "video":
		res = cam.Video
	case "still":
		res = cam.Still
	case "preview":
		res = cam.Preview
	case "isp":
		res = cam.Isp
	default:
		p.logger.Warn("unrecognized ColorCamera output, using default size for intrinsics",
			"port", port, "stream", xout.StreamName())
	}

	frame := p.frameName(cam.Socket)
	info, err := convert.CalibrationToCameraInfo(p.calib, cam.Socket, res.Width, res.Height, frame)
	if err != nil {
		p.logger.Warn("no color camera intrinsics", "socket", cam.Socket.String(), "error", err)
		info = nil
	}

	p.addImagePublisher(queue, "color/image", convert.NewImageConverter(frame, true), info)
	return true, nil
}

// mapMonoCamera claims mono camera outputs under <frame>/image, the frame
// name derived from the camera's socket.
func (p *PipelinePublisher) mapMonoCamera(xout *depthai.XLinkOut, producer depthai.Node, port string) (bool, error) {
	mono, ok := producer.(*depthai.MonoCamera)
	if !ok {
		return false, nil
	}

	queue, err := p.device.OutputQueue(xout.StreamName(), p.queueDepth, false)
	if err != nil {
		return true, fmt.Errorf("mono camera output queue: %w", err)
	}

	res := mono.Resolution
	if port != "out" {
		p.logger.Warn("unrecognized MonoCamera output, using native size for intrinsics",
			"port", port, "stream", xout.StreamName())
	}

	frame := p.frameName(mono.Socket)
	info, err := convert.CalibrationToCameraInfo(p.calib, mono.Socket, res.Width, res.Height, frame)
	if err != nil {
		p.logger.Warn("no mono camera intrinsics", "socket", mono.Socket.String(), "error", err)
		info = nil
	}

	name, ok := p.frameNames[mono.Socket]
	if !ok {
		name = mono.Socket.String()
	}
	p.addImagePublisher(queue, name+"/image", convert.NewImageConverter(frame, true), info)
	return true, nil
}
