package depthai

import "time"

// ImgFrame is a device-native image record as drained from an output queue.
type ImgFrame struct {
	Seq       int64
	Timestamp time.Time
	Instance  CameraBoardSocket
	Width     int
	Height    int
	Encoding  string
	Data      []byte
}

// IMUPacket is a single inertial sample.
type IMUPacket struct {
	Seq       int64
	Timestamp time.Time
	// Accelerometer, m/s^2.
	Accel [3]float64
	// Gyroscope, rad/s.
	Gyro [3]float64
	// Rotation vector quaternion (x, y, z, w).
	Rotation [4]float64
}

// IMUData is a batch of inertial samples as delivered by the device.
type IMUData struct {
	Packets []IMUPacket
}
