package depthai

// NodeID identifies a node inside a single pipeline.
type NodeID int

// Node is a typed unit in the device pipeline graph. Concrete node types are
// created with the New* constructors and registered via Pipeline.Add.
type Node interface {
	ID() NodeID
	Name() string
}

type baseNode struct {
	id NodeID
}

func (b *baseNode) ID() NodeID      { return b.id }
func (b *baseNode) setID(id NodeID) { b.id = id }

// Resolution is a sensor or stream resolution in pixels.
type Resolution struct {
	Width  int
	Height int
}

// ColorCamera models the device's color sensor node. Output ports: "video",
// "still", "preview", "isp". Control input port: "inputControl".
type ColorCamera struct {
	baseNode
	Socket  CameraBoardSocket
	Video   Resolution
	Still   Resolution
	Preview Resolution
	Isp     Resolution
}

// NewColorCamera creates a color camera node with OAK-style defaults.
func NewColorCamera(socket CameraBoardSocket) *ColorCamera {
	return &ColorCamera{
		Socket:  socket,
		Video:   Resolution{1920, 1080},
		Still:   Resolution{1920, 1080},
		Preview: Resolution{300, 300},
		Isp:     Resolution{1920, 1080},
	}
}

func (c *ColorCamera) Name() string { return "ColorCamera" }

// MonoCamera models a grayscale sensor node. Output port: "out". Control
// input port: "inputControl".
type MonoCamera struct {
	baseNode
	Socket     CameraBoardSocket
	Resolution Resolution
}

// NewMonoCamera creates a mono camera node at the 400p default.
func NewMonoCamera(socket CameraBoardSocket) *MonoCamera {
	return &MonoCamera{Socket: socket, Resolution: Resolution{640, 400}}
}

func (m *MonoCamera) Name() string { return "MonoCamera" }

// StereoDepth models the on-device stereo matcher. Input ports: "left",
// "right", "inputConfig". Output ports: "depth", "disparity",
// "confidenceMap", "rectifiedLeft", "rectifiedRight", "syncedLeft",
// "syncedRight".
type StereoDepth struct {
	baseNode
	// DepthAlign selects which socket depth output is aligned to.
	// SocketAuto resolves to the right camera.
	DepthAlign    CameraBoardSocket
	InitialConfig RawStereoDepthConfig
}

// NewStereoDepth creates a stereo depth node with auto alignment and the
// firmware default matcher configuration.
func NewStereoDepth() *StereoDepth {
	return &StereoDepth{
		DepthAlign:    SocketAuto,
		InitialConfig: DefaultStereoDepthConfig(),
	}
}

func (s *StereoDepth) Name() string { return "StereoDepth" }

// IMUNode models the inertial measurement unit. Output port: "out".
type IMUNode struct {
	baseNode
}

// NewIMU creates an IMU node.
func NewIMU() *IMUNode { return &IMUNode{} }

func (i *IMUNode) Name() string { return "IMU" }

// XLinkOut is an output endpoint: data linked into its "in" port leaves the
// device on the named stream.
type XLinkOut struct {
	baseNode
	streamName string
}

// NewXLinkOut creates an output endpoint for the given stream name.
func NewXLinkOut(streamName string) *XLinkOut {
	return &XLinkOut{streamName: streamName}
}

func (x *XLinkOut) Name() string       { return "XLinkOut" }
func (x *XLinkOut) StreamName() string { return x.streamName }

// XLinkIn is an input endpoint: messages sent to the named stream from the
// host appear on its "out" port inside the device.
type XLinkIn struct {
	baseNode
	streamName string
}

// NewXLinkIn creates an input endpoint for the given stream name.
func NewXLinkIn(streamName string) *XLinkIn {
	return &XLinkIn{streamName: streamName}
}

func (x *XLinkIn) Name() string       { return "XLinkIn" }
func (x *XLinkIn) StreamName() string { return x.streamName }
