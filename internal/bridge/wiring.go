package bridge

import "github.com/jdavidberger/depthai-ros/internal/depthai"

// stereoConfigStream is the single shared device-side control channel for
// the stereo matcher.
const stereoConfigStream = "stereoConfig"

// controlInputSuffix completes the per-camera device-side control stream
// name: <prefix><socket>_inputControl.
const controlInputSuffix = "_inputControl"

// wireControlInputs adds an XLinkIn node for every control-capable node and
// links it into the node's control input port. Must run before the pipeline
// starts; device APIs forbid graph mutation on a running pipeline, so the
// whole pass is skipped with a warning otherwise.
func (p *PipelinePublisher) wireControlInputs() {
	if p.device.Running() {
		p.logger.Warn("pipeline already running, skipping control input wiring; live reconfiguration disabled")
		return
	}

	for _, n := range p.pipeline.Nodes() {
		switch n := n.(type) {
		case *depthai.ColorCamera:
			p.wireCameraControl(n, n.Socket)
		case *depthai.MonoCamera:
			p.wireCameraControl(n, n.Socket)
		case *depthai.StereoDepth:
			if p.pipeline.InputLinked(n.ID(), "inputConfig") {
				continue
			}
			xin := depthai.NewXLinkIn(stereoConfigStream)
			p.pipeline.Add(xin)
			if err := p.pipeline.Link(xin, "out", n, "inputConfig"); err != nil {
				p.logger.Warn("wiring stereo config input failed", "error", err)
			}
		}
	}
}

func (p *PipelinePublisher) wireCameraControl(n depthai.Node, socket depthai.CameraBoardSocket) {
	if p.pipeline.InputLinked(n.ID(), "inputControl") {
		return
	}
	xin := depthai.NewXLinkIn(p.controlKey(socket) + controlInputSuffix)
	p.pipeline.Add(xin)
	if err := p.pipeline.Link(xin, "out", n, "inputControl"); err != nil {
		p.logger.Warn("wiring camera control input failed", "socket", socket.String(), "error", err)
	}
}
