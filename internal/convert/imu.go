package convert

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jdavidberger/depthai-ros/internal/depthai"
)

// ImuMessage is the published form of one inertial sample.
type ImuMessage struct {
	FrameID     string     `json:"frame_id"`
	Seq         int64      `json:"seq"`
	Timestamp   time.Time  `json:"timestamp"`
	Orientation [4]float64 `json:"orientation"`
	AngularVel  [3]float64 `json:"angular_velocity"`
	LinearAccel [3]float64 `json:"linear_acceleration"`
}

// Marshal serializes the message to JSON.
func (m ImuMessage) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// ImuConverter translates device IMU batches into per-sample messages.
type ImuConverter struct {
	frameID string
}

// NewImuConverter creates a converter for the given frame name.
func NewImuConverter(frameID string) *ImuConverter {
	return &ImuConverter{frameID: frameID}
}

// FrameID returns the frame name stamped on every converted message.
func (c *ImuConverter) FrameID() string { return c.frameID }

// Convert expands an IMU batch into one message per packet.
func (c *ImuConverter) Convert(msg any) ([]Message, error) {
	data, ok := msg.(*depthai.IMUData)
	if !ok {
		return nil, fmt.Errorf("imu converter %s: unexpected message type %T", c.frameID, msg)
	}
	out := make([]Message, 0, len(data.Packets))
	for _, p := range data.Packets {
		out = append(out, ImuMessage{
			FrameID:     c.frameID,
			Seq:         p.Seq,
			Timestamp:   p.Timestamp,
			Orientation: p.Rotation,
			AngularVel:  p.Gyro,
			LinearAccel: p.Accel,
		})
	}
	return out, nil
}
