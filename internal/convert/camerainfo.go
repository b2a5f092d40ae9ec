package convert

import (
	"encoding/json"
	"fmt"

	"github.com/jdavidberger/depthai-ros/internal/depthai"
)

// CameraInfo is the intrinsics record published alongside image channels.
// Field layout follows the ROS sensor_msgs convention: K is the 3x3
// intrinsic matrix row-major, P the 3x4 projection matrix.
type CameraInfo struct {
	FrameID    string      `json:"frame_id"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	K          [9]float64  `json:"k"`
	D          []float64   `json:"d"`
	R          [9]float64  `json:"r"`
	P          [12]float64 `json:"p"`
	Distortion string      `json:"distortion_model"`
}

// Marshal serializes the record to JSON.
func (c CameraInfo) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

// CalibrationToCameraInfo derives an intrinsics record for a socket at the
// requested resolution.
func CalibrationToCameraInfo(calib depthai.CalibrationHandler, socket depthai.CameraBoardSocket, width, height int, frameID string) (*CameraInfo, error) {
	in, err := calib.Intrinsics(socket, width, height)
	if err != nil {
		return nil, fmt.Errorf("camera info for %s: %w", socket, err)
	}

	info := &CameraInfo{
		FrameID:    frameID,
		Width:      width,
		Height:     height,
		D:          in.Distortion,
		Distortion: "rational_polynomial",
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			info.K[r*3+c] = in.Matrix[r][c]
			info.P[r*4+c] = in.Matrix[r][c]
		}
	}
	// Identity rectification for a single camera.
	info.R[0], info.R[4], info.R[8] = 1, 1, 1
	return info, nil
}
