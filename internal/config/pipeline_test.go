package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jdavidberger/depthai-ros/internal/depthai"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const oakPipelineTOML = `
mxid = "14442C10"

[[color_camera]]
socket = "CAM_A"
outputs = ["video"]

[[mono_camera]]
socket = "CAM_B"

[[mono_camera]]
socket = "CAM_C"

[stereo]
left = "CAM_B"
right = "CAM_C"
outputs = ["depth", "disparity"]
subpixel = true

[imu]
enabled = true
`

func TestLoadAndBuildPipeline(t *testing.T) {
	path := writeFile(t, "pipeline.toml", oakPipelineTOML)
	pf, err := LoadPipelineFile(path)
	if err != nil {
		t.Fatalf("LoadPipelineFile failed: %v", err)
	}
	if pf.MxID != "14442C10" {
		t.Errorf("mxid = %q", pf.MxID)
	}

	p, err := pf.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var (
		colors, monos, stereos, imus int
		streams                      []string
	)
	for _, n := range p.Nodes() {
		switch n := n.(type) {
		case *depthai.ColorCamera:
			colors++
		case *depthai.MonoCamera:
			monos++
		case *depthai.StereoDepth:
			stereos++
			if !n.InitialConfig.Subpixel {
				t.Error("stereo subpixel flag not applied")
			}
			if !p.InputLinked(n.ID(), "left") || !p.InputLinked(n.ID(), "right") {
				t.Error("stereo inputs not wired to the mono pair")
			}
		case *depthai.IMUNode:
			imus++
		case *depthai.XLinkOut:
			streams = append(streams, n.StreamName())
		}
	}
	if colors != 1 || monos != 2 || stereos != 1 || imus != 1 {
		t.Errorf("node counts = %d color, %d mono, %d stereo, %d imu", colors, monos, stereos, imus)
	}

	want := map[string]bool{"CAM_A_video": true, "stereo_depth": true, "stereo_disparity": true, "imu": true}
	if len(streams) != len(want) {
		t.Fatalf("streams = %v", streams)
	}
	for _, s := range streams {
		if !want[s] {
			t.Errorf("unexpected stream %q", s)
		}
	}
}

func TestBuildRejectsUndeclaredStereoInput(t *testing.T) {
	pf := &PipelineFile{
		Stereo: &StereoSection{Left: "CAM_B", Right: "CAM_C"},
	}
	if _, err := pf.Build(); err == nil {
		t.Error("expected error for stereo inputs without mono cameras")
	}
}

func TestBuildRejectsUnknownSocket(t *testing.T) {
	pf := &PipelineFile{ColorCameras: []ColorCamera{{Socket: "CAM_Z"}}}
	if _, err := pf.Build(); err == nil {
		t.Error("expected error for unknown socket name")
	}
}

func TestLoadPipelineFileMissing(t *testing.T) {
	if _, err := LoadPipelineFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
