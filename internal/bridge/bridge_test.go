package bridge

import (
	"encoding/json"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/jdavidberger/depthai-ros/internal/convert"
	"github.com/jdavidberger/depthai-ros/internal/depthai"
	"github.com/jdavidberger/depthai-ros/internal/events"
)

// fakeConn records publishes and subscription handlers in-process.
type fakeConn struct {
	mu       sync.Mutex
	msgs     map[string][][]byte
	handlers map[string]nats.MsgHandler
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		msgs:     make(map[string][][]byte),
		handlers: make(map[string]nats.MsgHandler),
	}
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs[subject] = append(f.msgs[subject], append([]byte(nil), data...))
	return nil
}

func (f *fakeConn) Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[subject] = cb
	return nil, nil
}

func (f *fakeConn) published(subject string) [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.msgs[subject]
}

// push delivers an inbound message to the registered handler for a subject.
func (f *fakeConn) push(t *testing.T, subject string, payload any) {
	t.Helper()
	f.mu.Lock()
	h := f.handlers[subject]
	f.mu.Unlock()
	if h == nil {
		t.Fatalf("no subscription for subject %q", subject)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	h(&nats.Msg{Subject: subject, Data: data})
}

// oakPipeline builds the full sensor graph of an OAK-style device: color
// camera, stereo pair with depth/disparity/confidence/rectified outputs, IMU.
func oakPipeline(t *testing.T) *depthai.Pipeline {
	t.Helper()
	p := depthai.NewPipeline()

	color := depthai.NewColorCamera(depthai.SocketRGB)
	p.Add(color)
	rgbOut := depthai.NewXLinkOut("rgb")
	p.Add(rgbOut)
	if err := p.Link(color, "video", rgbOut, "in"); err != nil {
		t.Fatal(err)
	}

	left := depthai.NewMonoCamera(depthai.SocketLeft)
	right := depthai.NewMonoCamera(depthai.SocketRight)
	stereo := depthai.NewStereoDepth()
	p.Add(left)
	p.Add(right)
	p.Add(stereo)
	if err := p.Link(left, "out", stereo, "left"); err != nil {
		t.Fatal(err)
	}
	if err := p.Link(right, "out", stereo, "right"); err != nil {
		t.Fatal(err)
	}
	for _, port := range []string{"depth", "disparity", "confidenceMap", "rectifiedLeft", "rectifiedRight"} {
		xout := depthai.NewXLinkOut("stereo_" + port)
		p.Add(xout)
		if err := p.Link(stereo, port, xout, "in"); err != nil {
			t.Fatal(err)
		}
	}

	imu := depthai.NewIMU()
	p.Add(imu)
	imuOut := depthai.NewXLinkOut("imu")
	p.Add(imuOut)
	if err := p.Link(imu, "out", imuOut, "in"); err != nil {
		t.Fatal(err)
	}

	return p
}

func newTestBridge(t *testing.T, pipeline *depthai.Pipeline, extra ...Option) (*fakeConn, *depthai.Device, *PipelinePublisher) {
	t.Helper()
	conn := newFakeConn()
	device := depthai.NewDevice("oak1", depthai.DefaultCalibration())
	opts := append([]Option{WithFramePrefix("test_")}, extra...)
	pub, err := New(conn, device, pipeline, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return conn, device, pub
}

func channels(pub *PipelinePublisher) []string {
	var out []string
	for _, p := range pub.Publishers() {
		out = append(out, p.Channel())
	}
	sort.Strings(out)
	return out
}

func TestMapOutputsCreatesExpectedChannels(t *testing.T) {
	_, _, pub := newTestBridge(t, oakPipeline(t))

	want := []string{
		"color/image",
		"imu",
		"left/image_rect",
		"right/image_rect",
		"stereo/confidenceMap",
		"stereo/depth",
		"stereo/disparity",
	}
	got := channels(pub)
	if len(got) != len(want) {
		t.Fatalf("channels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("channels = %v, want %v", got, want)
		}
	}
}

func TestAutoAlignmentUsesRightCamera(t *testing.T) {
	_, _, pub := newTestBridge(t, oakPipeline(t))

	for _, p := range pub.Publishers() {
		if p.Channel() != "stereo/depth" {
			continue
		}
		ci := p.CameraInfo()
		if ci == nil {
			t.Fatal("depth channel has no intrinsics")
		}
		if ci.FrameID != "test_CAM_C" {
			t.Errorf("depth frame = %q, want test_CAM_C (auto resolves to right)", ci.FrameID)
		}
		if ci.Width != 1280 || ci.Height != 720 {
			t.Errorf("depth intrinsics resolution = %dx%d, want 1280x720", ci.Width, ci.Height)
		}
		return
	}
	t.Fatal("no stereo/depth publisher")
}

func TestRectifiedSideUsesMonoCameraResolution(t *testing.T) {
	_, _, pub := newTestBridge(t, oakPipeline(t))

	for _, p := range pub.Publishers() {
		if p.Channel() != "left/image_rect" {
			continue
		}
		ci := p.CameraInfo()
		if ci == nil {
			t.Fatal("rectified channel has no intrinsics")
		}
		if ci.Width != 640 || ci.Height != 400 {
			t.Errorf("rectified intrinsics = %dx%d, want the mono camera's 640x400", ci.Width, ci.Height)
		}
		if ci.FrameID != "test_left_camera_optical_frame" {
			t.Errorf("rectified frame = %q", ci.FrameID)
		}
		return
	}
	t.Fatal("no left/image_rect publisher")
}

func TestUnmappedOutputWarnsAndContinues(t *testing.T) {
	p := oakPipeline(t)
	// An XLinkIn feeding an XLinkOut matches no known producer variant.
	xin := depthai.NewXLinkIn("loop_in")
	xout := depthai.NewXLinkOut("loop_out")
	p.Add(xin)
	p.Add(xout)
	if err := p.Link(xin, "out", xout, "in"); err != nil {
		t.Fatal(err)
	}

	bus := events.New()
	unmapped := make(chan events.OutputUnmappedEvent, 1)
	defer bus.Subscribe(func(e events.OutputUnmappedEvent) { unmapped <- e })()

	_, _, pub := newTestBridge(t, p, WithEventBus(bus))

	if got := len(pub.Publishers()); got != 7 {
		t.Errorf("got %d publishers, want 7; the unknown output must not abort mapping", got)
	}
	select {
	case e := <-unmapped:
		if e.Stream != "loop_out" {
			t.Errorf("unmapped event stream = %q, want loop_out", e.Stream)
		}
	case <-time.After(2 * time.Second):
		t.Error("no unmapped event received")
	}
}

func TestUnknownStereoPortClaimedWithoutPublisher(t *testing.T) {
	p := oakPipeline(t)
	var stereo *depthai.StereoDepth
	for _, n := range p.Nodes() {
		if s, ok := n.(*depthai.StereoDepth); ok {
			stereo = s
		}
	}
	xout := depthai.NewXLinkOut("stereo_debug")
	p.Add(xout)
	if err := p.Link(stereo, "debugDispLrCheckIt1", xout, "in"); err != nil {
		t.Fatal(err)
	}

	_, _, pub := newTestBridge(t, p)
	// The variant matched, so the unknown port is swallowed with a warning
	// rather than falling through to other builders.
	if got := len(pub.Publishers()); got != 7 {
		t.Errorf("got %d publishers, want 7", got)
	}
}

func TestControlWiringAddsInputStreams(t *testing.T) {
	_, device, pub := newTestBridge(t, oakPipeline(t))

	for _, stream := range []string{
		"test_CAM_A_inputControl",
		"test_CAM_B_inputControl",
		"test_CAM_C_inputControl",
		"stereoConfig",
	} {
		if _, err := device.InputQueue(stream); err != nil {
			t.Errorf("input stream %q missing: %v", stream, err)
		}
	}

	if pub.CameraServer(depthai.SocketRGB) == nil {
		t.Error("no control server for the color camera")
	}
	if got := len(pub.CameraServers()); got != 3 {
		t.Errorf("got %d camera control servers, want 3", got)
	}
	if pub.StereoServer() == nil {
		t.Error("no stereo config server")
	}
}

func TestControlPushSendsRestrictedCommand(t *testing.T) {
	conn, device, pub := newTestBridge(t, oakPipeline(t))

	// Seed the snapshot with a focus value so a later exposure push must
	// not resend it.
	srv := pub.CameraServer(depthai.SocketRGB)
	if err := srv.Apply(depthai.CameraControl{Fields: depthai.FieldFocus, LensPosition: 111}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	conn.push(t, "depthai.control.test_CAM_A", depthai.CameraControl{
		Fields:     depthai.FieldExposure | depthai.FieldISO,
		ExposureUs: 8000,
		ISO:        400,
	})

	queue, err := device.InputQueue("test_CAM_A_inputControl")
	if err != nil {
		t.Fatalf("InputQueue failed: %v", err)
	}
	sent := queue.Sent()
	if len(sent) != 2 {
		t.Fatalf("got %d commands, want 2", len(sent))
	}
	cmd := sent[1].(depthai.CameraControl)
	if cmd.Fields != depthai.FieldExposure|depthai.FieldISO {
		t.Errorf("command fields = %b, want exposure|iso only", cmd.Fields)
	}
	if cmd.ExposureUs != 8000 || cmd.ISO != 400 {
		t.Errorf("command = %+v", cmd)
	}

	// The merged snapshot keeps the earlier focus value.
	cur := srv.Current()
	if cur.LensPosition != 111 || cur.ExposureUs != 8000 {
		t.Errorf("snapshot = %+v", cur)
	}

	states := conn.published("depthai.control.test_CAM_A.state")
	if len(states) != 2 {
		t.Fatalf("got %d state publishes, want 2", len(states))
	}
	var state depthai.CameraControl
	if err := json.Unmarshal(states[1], &state); err != nil {
		t.Fatalf("state is not valid JSON: %v", err)
	}
	if state.LensPosition != 111 || state.ExposureUs != 8000 {
		t.Errorf("published state = %+v", state)
	}
}

func TestRegionPushConvertsCenterToTopLeft(t *testing.T) {
	conn, device, pub := newTestBridge(t, oakPipeline(t))
	srv := pub.CameraServer(depthai.SocketRGB)

	roi := RegionOfInterest{CenterX: 200, CenterY: 100, Width: 64, Height: 32}
	conn.push(t, "depthai.control.test_CAM_A.ae_bbox", roi)

	queue, err := device.InputQueue("test_CAM_A_inputControl")
	if err != nil {
		t.Fatalf("InputQueue failed: %v", err)
	}
	sent := queue.Sent()
	if len(sent) != 1 {
		t.Fatalf("got %d commands, want 1", len(sent))
	}
	cmd := sent[0].(depthai.CameraControl)
	if cmd.Fields != depthai.FieldAERegion {
		t.Errorf("command fields = %b, want the auto-exposure region group only", cmd.Fields)
	}
	want := depthai.Region{X: 168, Y: 84, Width: 64, Height: 32}
	if cmd.AERegion != want {
		t.Errorf("region = %+v, want %+v", cmd.AERegion, want)
	}

	// Pushing the same rectangle again resends the command but leaves the
	// snapshot unchanged.
	before := srv.Current()
	conn.push(t, "depthai.control.test_CAM_A.ae_bbox", roi)
	if after := srv.Current(); after != before {
		t.Errorf("snapshot changed on repeated push: %+v vs %+v", before, after)
	}
	if got := len(queue.Sent()); got != 2 {
		t.Errorf("got %d commands after repeat, want 2", got)
	}
}

func TestAutoFocusRegionUsesItsOwnFieldGroup(t *testing.T) {
	conn, device, _ := newTestBridge(t, oakPipeline(t))

	conn.push(t, "depthai.control.test_CAM_A.af_bbox", RegionOfInterest{CenterX: 50, CenterY: 50, Width: 20, Height: 20})

	queue, err := device.InputQueue("test_CAM_A_inputControl")
	if err != nil {
		t.Fatalf("InputQueue failed: %v", err)
	}
	sent := queue.Sent()
	if len(sent) != 1 {
		t.Fatalf("got %d commands, want 1", len(sent))
	}
	if cmd := sent[0].(depthai.CameraControl); cmd.Fields != depthai.FieldAFRegion {
		t.Errorf("command fields = %b, want the auto-focus region group only", cmd.Fields)
	}
}

func TestRunningDeviceSkipsControlWiring(t *testing.T) {
	p := oakPipeline(t)
	conn := newFakeConn()
	device := depthai.NewDevice("oak1", depthai.DefaultCalibration())
	if err := device.Start(p); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	pub, err := New(conn, device, p, WithFramePrefix("test_"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Publish-only degradation: outputs still map, control paths don't.
	if got := len(pub.Publishers()); got != 7 {
		t.Errorf("got %d publishers, want 7", got)
	}
	if pub.CameraServer(depthai.SocketRGB) != nil {
		t.Error("camera control server exists despite skipped wiring")
	}
	if pub.StereoServer() != nil {
		t.Error("stereo config server exists despite skipped wiring")
	}
}

func TestDisparityUsesMatcherSearchRange(t *testing.T) {
	p := oakPipeline(t)
	for _, n := range p.Nodes() {
		if s, ok := n.(*depthai.StereoDepth); ok {
			s.InitialConfig.Subpixel = true
		}
	}

	conn, device, _ := newTestBridge(t, p)

	if err := device.Inject("stereo_disparity", &depthai.ImgFrame{
		Seq: 3, Width: 1280, Height: 720, Encoding: "mono16",
	}); err != nil {
		t.Fatalf("Inject failed: %v", err)
	}

	msgs := conn.published("depthai.stereo.disparity")
	if len(msgs) != 1 {
		t.Fatalf("got %d disparity publishes, want 1", len(msgs))
	}
	var m convert.DisparityMessage
	if err := json.Unmarshal(msgs[0], &m); err != nil {
		t.Fatalf("disparity message is not valid JSON: %v", err)
	}
	// Subpixel raises the matcher search range to 95*8=760, below the
	// 880*75/20=3300 bound implied by the depth range.
	if m.MaxDisparity != 760 {
		t.Errorf("max disparity = %v, want 760", m.MaxDisparity)
	}
	if m.DeltaD != 1.0/32 {
		t.Errorf("deltaD = %v, want 1/32", m.DeltaD)
	}
}

func TestStereoConfigPushReplacesSnapshot(t *testing.T) {
	conn, device, pub := newTestBridge(t, oakPipeline(t))

	srv := pub.StereoServer()
	if srv == nil {
		t.Fatal("no stereo config server")
	}
	if srv.Current().ConfidenceThreshold != 245 {
		t.Fatalf("initial snapshot = %+v", srv.Current())
	}

	conn.push(t, "depthai.control.test_stereo", map[string]any{"confidence_threshold": 200})

	cur := srv.Current()
	if cur.ConfidenceThreshold != 200 {
		t.Errorf("confidence threshold = %d, want 200", cur.ConfidenceThreshold)
	}
	// Fields absent from the push keep their previous values.
	if cur.LeftRightCheckThreshold != 10 {
		t.Errorf("lr check threshold = %d, want 10", cur.LeftRightCheckThreshold)
	}

	queue, err := device.InputQueue("stereoConfig")
	if err != nil {
		t.Fatalf("InputQueue failed: %v", err)
	}
	sent := queue.Sent()
	if len(sent) != 1 {
		t.Fatalf("got %d config sends, want 1", len(sent))
	}
	if cfg := sent[0].(depthai.RawStereoDepthConfig); cfg.ConfidenceThreshold != 200 {
		t.Errorf("sent config = %+v", cfg)
	}

	states := conn.published("depthai.control.test_stereo.state")
	if len(states) != 1 {
		t.Errorf("got %d state publishes, want 1", len(states))
	}
}

func TestColorFrameEndToEnd(t *testing.T) {
	conn, device, _ := newTestBridge(t, oakPipeline(t))

	if err := device.Inject("rgb", &depthai.ImgFrame{
		Seq: 9, Width: 1920, Height: 1080, Encoding: "bgr8",
		Data: make([]byte, 16),
	}); err != nil {
		t.Fatalf("Inject failed: %v", err)
	}

	msgs := conn.published("depthai.color.image")
	if len(msgs) != 1 {
		t.Fatalf("got %d publishes, want 1", len(msgs))
	}
	var img convert.ImageMessage
	if err := json.Unmarshal(msgs[0], &img); err != nil {
		t.Fatalf("image message is not valid JSON: %v", err)
	}
	if img.Seq != 9 || img.FrameID != "test_CAM_A" || img.Step != 1920*3 {
		t.Errorf("published image = frame %q seq %d step %d", img.FrameID, img.Seq, img.Step)
	}

	infos := conn.published("depthai.color.image.camera_info")
	if len(infos) != 1 {
		t.Fatalf("got %d camera info publishes, want 1", len(infos))
	}
	var ci convert.CameraInfo
	if err := json.Unmarshal(infos[0], &ci); err != nil {
		t.Fatalf("camera info is not valid JSON: %v", err)
	}
	if ci.Width != 1920 || ci.Height != 1080 {
		t.Errorf("camera info resolution = %dx%d", ci.Width, ci.Height)
	}
}

func TestMonoCameraPublishesUnderSocketName(t *testing.T) {
	p := depthai.NewPipeline()
	mono := depthai.NewMonoCamera(depthai.SocketLeft)
	xout := depthai.NewXLinkOut("mono")
	p.Add(mono)
	p.Add(xout)
	if err := p.Link(mono, "out", xout, "in"); err != nil {
		t.Fatal(err)
	}

	_, _, pub := newTestBridge(t, p)
	got := channels(pub)
	if len(got) != 1 || got[0] != "CAM_B/image" {
		t.Errorf("channels = %v, want [CAM_B/image]", got)
	}
}

func TestDefaultFramePrefixDerivesFromDevice(t *testing.T) {
	conn := newFakeConn()
	device := depthai.NewDevice("14442C10", depthai.DefaultCalibration())
	pub, err := New(conn, device, oakPipeline(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	srv := pub.CameraServer(depthai.SocketRGB)
	if srv == nil {
		t.Fatal("no control server for the color camera")
	}
	if srv.Key() != "dai_14442C10_CAM_A" {
		t.Errorf("control key = %q, want dai_14442C10_CAM_A", srv.Key())
	}
}

func TestStereoServerSeededBeforeMapping(t *testing.T) {
	// The disparity converter must observe the defaults captured by the
	// stereo config server, so server setup precedes mapping. Verify the
	// observable consequence: a snapshot exists the moment New returns.
	_, _, pub := newTestBridge(t, oakPipeline(t))
	if pub.StereoServer() == nil {
		t.Fatal("stereo server missing after construction")
	}
	if pub.StereoServer().Current().ConfidenceThreshold == 0 {
		t.Error("stereo snapshot not seeded from the node's initial config")
	}
}

func TestStereoSideWithoutMonoUpstreamSkipsChannel(t *testing.T) {
	p := depthai.NewPipeline()
	color := depthai.NewColorCamera(depthai.SocketRGB)
	right := depthai.NewMonoCamera(depthai.SocketRight)
	stereo := depthai.NewStereoDepth()
	p.Add(color)
	p.Add(right)
	p.Add(stereo)
	// A color camera feeding the left input cannot provide mono intrinsics.
	if err := p.Link(color, "video", stereo, "left"); err != nil {
		t.Fatal(err)
	}
	if err := p.Link(right, "out", stereo, "right"); err != nil {
		t.Fatal(err)
	}
	for _, port := range []string{"rectifiedLeft", "rectifiedRight"} {
		xout := depthai.NewXLinkOut("stereo_" + port)
		p.Add(xout)
		if err := p.Link(stereo, port, xout, "in"); err != nil {
			t.Fatal(err)
		}
	}

	_, _, pub := newTestBridge(t, p)

	got := channels(pub)
	if len(got) != 1 || got[0] != "right/image_rect" {
		t.Errorf("channels = %v, want only right/image_rect; the unresolved side must be skipped without aborting", got)
	}
}

func TestColorCameraUnknownPortUsesDefaultSize(t *testing.T) {
	p := depthai.NewPipeline()
	color := depthai.NewColorCamera(depthai.SocketRGB)
	p.Add(color)
	xout := depthai.NewXLinkOut("rgb_raw")
	p.Add(xout)
	if err := p.Link(color, "raw", xout, "in"); err != nil {
		t.Fatal(err)
	}

	_, _, pub := newTestBridge(t, p)

	pubs := pub.Publishers()
	if len(pubs) != 1 || pubs[0].Channel() != "color/image" {
		t.Fatalf("channels = %v, want [color/image]", channels(pub))
	}
	ci := pubs[0].CameraInfo()
	if ci == nil {
		t.Fatal("color channel has no intrinsics")
	}
	if ci.Width != 1280 || ci.Height != 720 {
		t.Errorf("intrinsics resolution = %dx%d, want the 1280x720 fallback", ci.Width, ci.Height)
	}
}

func TestControlApplySerializesDeviceSends(t *testing.T) {
	_, device, pub := newTestBridge(t, oakPipeline(t))
	srv := pub.CameraServer(depthai.SocketRGB)
	if srv == nil {
		t.Fatal("no control server for the color camera")
	}
	queue, err := device.InputQueue("test_CAM_A_inputControl")
	if err != nil {
		t.Fatalf("InputQueue failed: %v", err)
	}

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	queue.SetReceiver(func(any) {
		once.Do(func() {
			close(entered)
			<-release
		})
	})

	first := make(chan struct{})
	go func() {
		defer close(first)
		if err := srv.Apply(depthai.CameraControl{Fields: depthai.FieldExposure, ExposureUs: 8000}); err != nil {
			t.Error(err)
		}
	}()
	<-entered

	second := make(chan struct{})
	go func() {
		defer close(second)
		if err := srv.Apply(depthai.CameraControl{Fields: depthai.FieldFocus, LensPosition: 120}); err != nil {
			t.Error(err)
		}
	}()

	// While the first command is still in flight on the device queue, a
	// concurrent trigger must wait its turn.
	select {
	case <-second:
		t.Fatal("second apply completed while the first send was in flight")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	<-first
	<-second

	sent := queue.Sent()
	if len(sent) != 2 {
		t.Fatalf("got %d commands, want 2", len(sent))
	}
	last := sent[1].(depthai.CameraControl)
	cur := srv.Current()
	if last.ExposureUs != cur.ExposureUs || last.LensPosition != cur.LensPosition {
		t.Errorf("last command %+v disagrees with snapshot %+v", last, cur)
	}
}

func TestStereoApplySerializesDeviceSends(t *testing.T) {
	_, device, pub := newTestBridge(t, oakPipeline(t))
	srv := pub.StereoServer()
	if srv == nil {
		t.Fatal("no stereo config server")
	}
	queue, err := device.InputQueue("stereoConfig")
	if err != nil {
		t.Fatalf("InputQueue failed: %v", err)
	}

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	queue.SetReceiver(func(any) {
		once.Do(func() {
			close(entered)
			<-release
		})
	})

	cfgA := srv.Current()
	cfgA.ConfidenceThreshold = 200
	cfgB := cfgA
	cfgB.ConfidenceThreshold = 150

	first := make(chan struct{})
	go func() {
		defer close(first)
		if err := srv.Apply(cfgA); err != nil {
			t.Error(err)
		}
	}()
	<-entered

	second := make(chan struct{})
	go func() {
		defer close(second)
		if err := srv.Apply(cfgB); err != nil {
			t.Error(err)
		}
	}()

	select {
	case <-second:
		t.Fatal("second apply completed while the first send was in flight")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	<-first
	<-second

	sent := queue.Sent()
	if len(sent) != 2 {
		t.Fatalf("got %d configs, want 2", len(sent))
	}
	if last := sent[1].(depthai.RawStereoDepthConfig); last != srv.Current() {
		t.Errorf("last config %+v disagrees with snapshot %+v", last, srv.Current())
	}
}
