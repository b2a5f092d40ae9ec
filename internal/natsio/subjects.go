package natsio

import "strings"

// SubjectRoot prefixes every subject published or consumed by the bridge.
const SubjectRoot = "depthai"

// ChannelSubject converts a slash-separated channel name ("stereo/depth",
// "color/image") into its NATS subject under the root.
func ChannelSubject(channel string) string {
	return SubjectRoot + "." + strings.ReplaceAll(channel, "/", ".")
}

// CameraInfoSubject is the side channel carrying intrinsics records for a
// published image channel.
func CameraInfoSubject(channel string) string {
	return ChannelSubject(channel) + ".camera_info"
}

// ControlSubject is the inbound subject accepting full camera-control pushes
// for one control-capable node. Keys take the form <prefix><socket>.
func ControlSubject(key string) string {
	return SubjectRoot + ".control." + sanitize(key)
}

// AutoExposureSubject accepts region-of-interest pushes steering auto exposure.
func AutoExposureSubject(key string) string {
	return ControlSubject(key) + ".ae_bbox"
}

// AutoFocusSubject accepts region-of-interest pushes steering auto focus.
func AutoFocusSubject(key string) string {
	return ControlSubject(key) + ".af_bbox"
}

// StateSubject carries the merged configuration snapshot back to external
// readers after every applied update.
func StateSubject(key string) string {
	return ControlSubject(key) + ".state"
}

// EventSubject carries bridge lifecycle events mirrored from the in-process
// event bus.
func EventSubject(name string) string {
	return SubjectRoot + ".events." + name
}

// NATS separates tokens with dots; keys derived from frame prefixes may
// contain slashes or spaces.
func sanitize(key string) string {
	r := strings.NewReplacer("/", ".", " ", "_")
	return r.Replace(key)
}
