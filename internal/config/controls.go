package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/jdavidberger/depthai-ros/internal/depthai"
)

// ControlDefaults is the TOML file carrying camera and stereo control
// defaults. Watched at runtime; changes are pushed through the same
// reconfiguration path as external control messages.
type ControlDefaults struct {
	Cameras map[string]CameraDefaults `toml:"cameras"` // keyed by socket name
	Stereo  *StereoDefaults           `toml:"stereo"`
}

// CameraDefaults holds optional camera control values. Only fields present
// in the file are applied.
type CameraDefaults struct {
	ExposureUs   *int    `toml:"exposure_us"`
	ISO          *int    `toml:"iso"`
	LensPosition *int    `toml:"lens_position"`
	FocusMode    *string `toml:"af_mode"`
	AELock       *bool   `toml:"ae_lock"`
}

// Control converts the defaults into a partial CameraControl update with
// the field mask set for present values.
func (d CameraDefaults) Control() depthai.CameraControl {
	var c depthai.CameraControl
	if d.ExposureUs != nil {
		c.ExposureUs = *d.ExposureUs
		c.Fields |= depthai.FieldExposure
	}
	if d.ISO != nil {
		c.ISO = *d.ISO
		c.Fields |= depthai.FieldISO
	}
	if d.LensPosition != nil {
		c.LensPosition = *d.LensPosition
		c.Fields |= depthai.FieldFocus
	}
	if d.FocusMode != nil {
		c.AutoFocusMode = *d.FocusMode
		c.Fields |= depthai.FieldFocusMode
	}
	if d.AELock != nil {
		c.AutoExposureLock = *d.AELock
		c.Fields |= depthai.FieldAELock
	}
	return c
}

// StereoDefaults holds optional stereo matcher overrides.
type StereoDefaults struct {
	ConfidenceThreshold     *int  `toml:"confidence_threshold"`
	LeftRightCheckThreshold *int  `toml:"lr_check_threshold"`
	ExtendedDisparity       *bool `toml:"extended_disparity"`
	Subpixel                *bool `toml:"subpixel"`
	BilateralFilterSigma    *int  `toml:"bilateral_sigma"`
	ThresholdMinRange       *int  `toml:"threshold_min_range"`
	ThresholdMaxRange       *int  `toml:"threshold_max_range"`
}

// Apply overlays the present values onto cfg.
func (d StereoDefaults) Apply(cfg depthai.RawStereoDepthConfig) depthai.RawStereoDepthConfig {
	if d.ConfidenceThreshold != nil {
		cfg.ConfidenceThreshold = *d.ConfidenceThreshold
	}
	if d.LeftRightCheckThreshold != nil {
		cfg.LeftRightCheckThreshold = *d.LeftRightCheckThreshold
	}
	if d.ExtendedDisparity != nil {
		cfg.ExtendedDisparity = *d.ExtendedDisparity
	}
	if d.Subpixel != nil {
		cfg.Subpixel = *d.Subpixel
	}
	if d.BilateralFilterSigma != nil {
		cfg.BilateralFilterSigma = *d.BilateralFilterSigma
	}
	if d.ThresholdMinRange != nil {
		cfg.ThresholdMinRange = *d.ThresholdMinRange
	}
	if d.ThresholdMaxRange != nil {
		cfg.ThresholdMaxRange = *d.ThresholdMaxRange
	}
	return cfg
}

// LoadControlDefaults parses a control defaults file.
func LoadControlDefaults(path string) (ControlDefaults, error) {
	var cd ControlDefaults
	data, err := os.ReadFile(path)
	if err != nil {
		return cd, fmt.Errorf("read control defaults: %w", err)
	}
	if err := toml.Unmarshal(data, &cd); err != nil {
		return cd, fmt.Errorf("parse control defaults %s: %w", path, err)
	}
	return cd, nil
}
