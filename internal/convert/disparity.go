package convert

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jdavidberger/depthai-ros/internal/depthai"
)

// DisparityMessage is the published form of a stereo disparity frame.
type DisparityMessage struct {
	FrameID      string    `json:"frame_id"`
	Seq          int64     `json:"seq"`
	Timestamp    time.Time `json:"timestamp"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Data         []byte    `json:"data"`
	FocalLength  float64   `json:"f"`
	Baseline     float64   `json:"t"`
	MinDisparity float64   `json:"min_disparity"`
	MaxDisparity float64   `json:"max_disparity"`
	DeltaD       float64   `json:"delta_d"`
}

// Marshal serializes the message to JSON.
func (m DisparityMessage) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// DisparityConverter translates stereo disparity frames. Focal length and
// baseline are supplied by the caller; they are configuration defaults, not
// calibration truth.
type DisparityConverter struct {
	frameID     string
	focal       float64
	baseline    float64
	minDepth    float64
	maxDepth    float64
	searchRange float64
	subpixel    bool
}

// NewDisparityConverter creates a converter for the given frame name.
// Baseline is in centimeters, depths in millimeters.
func NewDisparityConverter(frameID string, focal, baseline, minDepth, maxDepth float64) *DisparityConverter {
	return &DisparityConverter{
		frameID:  frameID,
		focal:    focal,
		baseline: baseline,
		minDepth: minDepth,
		maxDepth: maxDepth,
	}
}

// FrameID returns the frame name stamped on every converted message.
func (c *DisparityConverter) FrameID() string { return c.frameID }

// SetSearchRange bounds the published disparity by the matcher's configured
// search range. Subpixel mode refines the disparity step to 1/32.
func (c *DisparityConverter) SetSearchRange(maxDisparity float64, subpixel bool) {
	c.searchRange = maxDisparity
	c.subpixel = subpixel
}

// Convert turns a device disparity frame into a publishable message.
func (c *DisparityConverter) Convert(msg any) ([]Message, error) {
	frame, ok := msg.(*depthai.ImgFrame)
	if !ok {
		return nil, fmt.Errorf("disparity converter %s: unexpected message type %T", c.frameID, msg)
	}
	// baseline cm -> mm; disparity bounds derived from the depth range.
	baselineMM := c.baseline * 10
	maxDisparity := c.focal * baselineMM / c.minDepth
	if c.searchRange > 0 && c.searchRange < maxDisparity {
		maxDisparity = c.searchRange
	}
	deltaD := 1.0
	if c.subpixel {
		deltaD = 1.0 / 32
	}
	return []Message{DisparityMessage{
		FrameID:      c.frameID,
		Seq:          frame.Seq,
		Timestamp:    frame.Timestamp,
		Width:        frame.Width,
		Height:       frame.Height,
		Data:         frame.Data,
		FocalLength:  c.focal,
		Baseline:     baselineMM,
		MinDisparity: c.focal * baselineMM / c.maxDepth,
		MaxDisparity: maxDisparity,
		DeltaD:       deltaD,
	}}, nil
}
