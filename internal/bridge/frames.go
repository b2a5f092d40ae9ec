package bridge

import "github.com/jdavidberger/depthai-ros/internal/depthai"

// DefaultFrameNames maps every physical socket to its board name (CAM_A..).
func DefaultFrameNames() map[depthai.CameraBoardSocket]string {
	names := make(map[depthai.CameraBoardSocket]string, len(depthai.AllSockets))
	for _, s := range depthai.AllSockets {
		names[s] = s.String()
	}
	return names
}

// frameName resolves a socket to its prefixed frame name.
func (p *PipelinePublisher) frameName(socket depthai.CameraBoardSocket) string {
	name, ok := p.frameNames[socket]
	if !ok {
		name = socket.String()
	}
	return p.framePrefix + name
}
