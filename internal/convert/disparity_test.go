package convert

import (
	"math"
	"testing"

	"github.com/jdavidberger/depthai-ros/internal/depthai"
)

func disparityMessage(t *testing.T, conv *DisparityConverter) DisparityMessage {
	t.Helper()
	msgs, err := conv.Convert(&depthai.ImgFrame{Width: 1280, Height: 720, Encoding: "mono16"})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	return msgs[0].(DisparityMessage)
}

func TestDisparityBoundsFromDepthRange(t *testing.T) {
	conv := NewDisparityConverter("stereo", 880, 7.5, 20, 2000)
	m := disparityMessage(t, conv)

	// baseline 7.5 cm -> 75 mm.
	if m.Baseline != 75 {
		t.Errorf("baseline = %v, want 75", m.Baseline)
	}
	if want := 880.0 * 75 / 2000; math.Abs(m.MinDisparity-want) > 1e-9 {
		t.Errorf("min disparity = %v, want %v", m.MinDisparity, want)
	}
	if want := 880.0 * 75 / 20; math.Abs(m.MaxDisparity-want) > 1e-9 {
		t.Errorf("max disparity = %v, want %v", m.MaxDisparity, want)
	}
	if m.DeltaD != 1.0 {
		t.Errorf("deltaD = %v, want 1", m.DeltaD)
	}
}

func TestDisparitySearchRangeClamps(t *testing.T) {
	conv := NewDisparityConverter("stereo", 880, 7.5, 20, 2000)
	conv.SetSearchRange(760, true)
	m := disparityMessage(t, conv)

	// 880*75/20 = 3300 exceeds the matcher's 760 step search range.
	if m.MaxDisparity != 760 {
		t.Errorf("max disparity = %v, want clamped to 760", m.MaxDisparity)
	}
	if m.DeltaD != 1.0/32 {
		t.Errorf("deltaD = %v, want 1/32 in subpixel mode", m.DeltaD)
	}
}

func TestDisparitySearchRangeAboveBoundIgnored(t *testing.T) {
	conv := NewDisparityConverter("stereo", 880, 7.5, 20, 2000)
	conv.SetSearchRange(5000, false)
	m := disparityMessage(t, conv)
	if want := 880.0 * 75 / 20; m.MaxDisparity != want {
		t.Errorf("max disparity = %v, want %v", m.MaxDisparity, want)
	}
}

func TestDisparityRejectsWrongType(t *testing.T) {
	conv := NewDisparityConverter("stereo", 880, 7.5, 20, 2000)
	if _, err := conv.Convert("not a frame"); err == nil {
		t.Error("expected error for non-image message")
	}
}
