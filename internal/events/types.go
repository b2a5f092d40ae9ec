package events

import "github.com/jdavidberger/depthai-ros/internal/depthai"

// Event type constants for kelindar/event.
const (
	TypePublisherCreated uint32 = iota + 1
	TypeOutputUnmapped
	TypeControlApplied
	TypeRegionOfInterest
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// PublisherCreatedEvent fires when the output-mapping pass creates a
// publisher for a device output stream.
type PublisherCreatedEvent struct {
	Channel string `json:"channel"`
	Stream  string `json:"stream"`
	FrameID string `json:"frame_id"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// Type returns the event type identifier for PublisherCreatedEvent.
func (e PublisherCreatedEvent) Type() uint32 { return TypePublisherCreated }

// OutputUnmappedEvent fires when no builder claims an output stream.
type OutputUnmappedEvent struct {
	Stream string `json:"stream"`
	Node   string `json:"node"`
	Port   string `json:"port"`
}

// Type returns the event type identifier for OutputUnmappedEvent.
func (e OutputUnmappedEvent) Type() uint32 { return TypeOutputUnmapped }

// ControlAppliedEvent fires after a configuration update is sent to the
// device.
type ControlAppliedEvent struct {
	Key    string                     `json:"key"`
	Socket depthai.CameraBoardSocket  `json:"socket"`
	Fields depthai.CameraControlField `json:"fields"`
}

// Type returns the event type identifier for ControlAppliedEvent.
func (e ControlAppliedEvent) Type() uint32 { return TypeControlApplied }

// RegionOfInterestEvent fires when an ae_bbox/af_bbox push is merged into a
// node's configuration snapshot.
type RegionOfInterestEvent struct {
	Key    string                    `json:"key"`
	Socket depthai.CameraBoardSocket `json:"socket"`
	Kind   string                    `json:"kind"` // "ae" or "af"
	Region depthai.Region            `json:"region"`
}

// Type returns the event type identifier for RegionOfInterestEvent.
func (e RegionOfInterestEvent) Type() uint32 { return TypeRegionOfInterest }
