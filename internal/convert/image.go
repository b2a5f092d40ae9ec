package convert

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jdavidberger/depthai-ros/internal/depthai"
)

// Message is anything a BridgePublisher can put on the wire.
type Message interface {
	Marshal() ([]byte, error)
}

// ImageMessage is the published form of a device image frame.
type ImageMessage struct {
	FrameID   string    `json:"frame_id"`
	Seq       int64     `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Encoding  string    `json:"encoding"`
	Step      int       `json:"step"`
	Data      []byte    `json:"data"`
}

// Marshal serializes the message to JSON.
func (m ImageMessage) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// ImageConverter translates device ImgFrames into ImageMessages bound to one
// frame name.
type ImageConverter struct {
	frameID     string
	interleaved bool
}

// NewImageConverter creates a converter for the given frame name.
// Interleaved selects the byte order stamped on three-channel frames:
// bgr8 when interleaved, rgb8 when planar.
func NewImageConverter(frameID string, interleaved bool) *ImageConverter {
	return &ImageConverter{frameID: frameID, interleaved: interleaved}
}

// FrameID returns the frame name stamped on every converted message.
func (c *ImageConverter) FrameID() string { return c.frameID }

// Convert turns a device message into publishable image messages. Usable
// directly as a publisher conversion callback.
func (c *ImageConverter) Convert(msg any) ([]Message, error) {
	frame, ok := msg.(*depthai.ImgFrame)
	if !ok {
		return nil, fmt.Errorf("image converter %s: unexpected message type %T", c.frameID, msg)
	}
	encoding := frame.Encoding
	step := frame.Width
	switch encoding {
	case "bgr8", "rgb8":
		step = frame.Width * 3
		if c.interleaved {
			encoding = "bgr8"
		} else {
			encoding = "rgb8"
		}
	case "mono16", "16UC1":
		step = frame.Width * 2
	}
	return []Message{ImageMessage{
		FrameID:   c.frameID,
		Seq:       frame.Seq,
		Timestamp: frame.Timestamp,
		Width:     frame.Width,
		Height:    frame.Height,
		Encoding:  encoding,
		Step:      step,
		Data:      frame.Data,
	}}, nil
}
