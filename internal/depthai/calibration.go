package depthai

import "fmt"

// CameraIntrinsics is the stored per-socket calibration: a 3x3 intrinsic
// matrix valid at the stored resolution plus distortion coefficients.
type CameraIntrinsics struct {
	Width      int
	Height     int
	Matrix     [3][3]float64
	Distortion []float64
}

// CalibrationHandler provides read-only access to the device's calibration
// EEPROM contents. Shared by every builder after a single read.
type CalibrationHandler struct {
	cameras map[CameraBoardSocket]CameraIntrinsics
}

// NewCalibrationHandler builds a handler over per-socket intrinsics.
func NewCalibrationHandler(cameras map[CameraBoardSocket]CameraIntrinsics) CalibrationHandler {
	return CalibrationHandler{cameras: cameras}
}

// DefaultCalibration returns plausible OAK-D intrinsics for the simulated
// device: a 4K color sensor on CAM_A and 400p mono pair on CAM_B/CAM_C.
func DefaultCalibration() CalibrationHandler {
	mono := func() CameraIntrinsics {
		return CameraIntrinsics{
			Width: 640, Height: 400,
			Matrix: [3][3]float64{
				{451.2, 0, 320.0},
				{0, 451.2, 200.0},
				{0, 0, 1},
			},
			Distortion: []float64{-4.2, 12.1, 0.001, -0.0008, -10.6},
		}
	}
	return NewCalibrationHandler(map[CameraBoardSocket]CameraIntrinsics{
		SocketCamA: {
			Width: 3840, Height: 2160,
			Matrix: [3][3]float64{
				{2978.4, 0, 1920.0},
				{0, 2978.4, 1080.0},
				{0, 0, 1},
			},
			Distortion: []float64{2.1, -8.9, 0.0004, 0.0011, 23.5},
		},
		SocketCamB: mono(),
		SocketCamC: mono(),
	})
}

// Intrinsics returns the socket's intrinsic matrix scaled to the requested
// resolution.
func (c CalibrationHandler) Intrinsics(socket CameraBoardSocket, width, height int) (CameraIntrinsics, error) {
	stored, ok := c.cameras[socket]
	if !ok {
		return CameraIntrinsics{}, fmt.Errorf("no calibration for socket %s", socket)
	}
	if width <= 0 || height <= 0 {
		return CameraIntrinsics{}, fmt.Errorf("intrinsics for %s: invalid resolution %dx%d", socket, width, height)
	}
	sx := float64(width) / float64(stored.Width)
	sy := float64(height) / float64(stored.Height)
	out := CameraIntrinsics{
		Width:      width,
		Height:     height,
		Distortion: append([]float64(nil), stored.Distortion...),
	}
	out.Matrix = stored.Matrix
	out.Matrix[0][0] *= sx // fx
	out.Matrix[0][2] *= sx // cx
	out.Matrix[1][1] *= sy // fy
	out.Matrix[1][2] *= sy // cy
	return out, nil
}
