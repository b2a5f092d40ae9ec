package bridge

import "github.com/jdavidberger/depthai-ros/internal/depthai"

// setupControlServers creates one reconfiguration server per control-capable
// node. Runs after pipeline start (input queues exist only on a running
// device) and before output mapping, which reads the stereo defaults the
// server captured. When the config-wiring pass was skipped the control
// streams don't exist; those nodes degrade to publish-only with a warning.
func (p *PipelinePublisher) setupControlServers() error {
	for _, n := range p.pipeline.Nodes() {
		switch n := n.(type) {
		case *depthai.ColorCamera:
			if err := p.setupCameraServer(n.Socket); err != nil {
				return err
			}
		case *depthai.MonoCamera:
			if err := p.setupCameraServer(n.Socket); err != nil {
				return err
			}
		case *depthai.StereoDepth:
			if p.stereoServer != nil {
				continue
			}
			queue, err := p.device.InputQueue(stereoConfigStream)
			if err != nil {
				p.logger.Warn("stereo config stream missing, live reconfiguration disabled", "error", err)
				continue
			}
			key := p.framePrefix + "stereo"
			srv, err := newStereoConfigServer(key, n.InitialConfig, p.conn, queue, p.logger)
			if err != nil {
				return err
			}
			p.stereoServer = srv
			p.keep(srv)
			p.logger.Info("stereo config server ready", "key", key)
		}
	}
	return nil
}

// setupCameraServer creates the control server for one camera socket. At
// most one server exists per socket.
func (p *PipelinePublisher) setupCameraServer(socket depthai.CameraBoardSocket) error {
	if _, exists := p.cameraServers[socket]; exists {
		return nil
	}
	key := p.controlKey(socket)
	queue, err := p.device.InputQueue(key + controlInputSuffix)
	if err != nil {
		p.logger.Warn("camera control stream missing, live reconfiguration disabled",
			"socket", socket.String(), "error", err)
		return nil
	}
	srv, err := newCameraControlServer(key, socket, p.conn, queue, p.bus, p.logger)
	if err != nil {
		return err
	}
	p.cameraServers[socket] = srv
	p.keep(srv)
	p.logger.Info("camera control server ready", "key", key)
	return nil
}
