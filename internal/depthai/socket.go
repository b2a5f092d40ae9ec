package depthai

import "fmt"

// CameraBoardSocket identifies a physical sensor location on the device.
type CameraBoardSocket int

// Known board sockets. SocketAuto is a sentinel meaning "let the device pick".
const (
	SocketAuto CameraBoardSocket = iota - 1
	SocketCamA
	SocketCamB
	SocketCamC
	SocketCamD
	SocketCamE
	SocketCamF
	SocketCamG
)

// Conventional aliases used by OAK-style devices.
const (
	SocketRGB   = SocketCamA
	SocketLeft  = SocketCamB
	SocketRight = SocketCamC
)

// AllSockets lists every physical socket, excluding the auto sentinel.
var AllSockets = []CameraBoardSocket{
	SocketCamA, SocketCamB, SocketCamC, SocketCamD,
	SocketCamE, SocketCamF, SocketCamG,
}

func (s CameraBoardSocket) String() string {
	if s == SocketAuto {
		return "AUTO"
	}
	if s >= SocketCamA && s <= SocketCamG {
		return fmt.Sprintf("CAM_%c", 'A'+rune(s))
	}
	return fmt.Sprintf("CAM_%d", int(s))
}

// ParseSocket converts a socket name such as "CAM_A" or "AUTO" back to its
// identifier. Used by the pipeline file loader and the HTTP API.
func ParseSocket(name string) (CameraBoardSocket, error) {
	if name == "AUTO" {
		return SocketAuto, nil
	}
	for _, s := range AllSockets {
		if s.String() == name {
			return s, nil
		}
	}
	return SocketAuto, fmt.Errorf("unknown camera board socket %q", name)
}
