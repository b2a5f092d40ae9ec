package depthai

// CameraControlField is a bitmask naming which CameraControl fields carry a
// value. Commands sent to the device include only the flagged fields.
type CameraControlField uint32

const (
	FieldExposure CameraControlField = 1 << iota
	FieldISO
	FieldFocus
	FieldFocusMode
	FieldAELock
	FieldAERegion
	FieldAFRegion
)

// Region is a target rectangle in sensor pixel coordinates, top-left anchored.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CameraControl is the live camera configuration pushed into a running
// ColorCamera or MonoCamera node.
type CameraControl struct {
	Fields           CameraControlField `json:"fields"`
	ExposureUs       int                `json:"exposure_us"`
	ISO              int                `json:"iso"`
	LensPosition     int                `json:"lens_position"`
	AutoFocusMode    string             `json:"af_mode"`
	AutoExposureLock bool               `json:"ae_lock"`
	AERegion         Region             `json:"ae_region"`
	AFRegion         Region             `json:"af_region"`
}

// Merge copies the flagged fields of other into c and returns the combined
// field set.
func (c *CameraControl) Merge(other CameraControl) CameraControlField {
	if other.Fields&FieldExposure != 0 {
		c.ExposureUs = other.ExposureUs
	}
	if other.Fields&FieldISO != 0 {
		c.ISO = other.ISO
	}
	if other.Fields&FieldFocus != 0 {
		c.LensPosition = other.LensPosition
	}
	if other.Fields&FieldFocusMode != 0 {
		c.AutoFocusMode = other.AutoFocusMode
	}
	if other.Fields&FieldAELock != 0 {
		c.AutoExposureLock = other.AutoExposureLock
	}
	if other.Fields&FieldAERegion != 0 {
		c.AERegion = other.AERegion
	}
	if other.Fields&FieldAFRegion != 0 {
		c.AFRegion = other.AFRegion
	}
	c.Fields |= other.Fields
	return other.Fields
}

// Command extracts a control message restricted to the given field group,
// suitable for sending on a node's control input queue.
func (c CameraControl) Command(fields CameraControlField) CameraControl {
	cmd := c
	cmd.Fields = c.Fields & fields
	return cmd
}

// RawStereoDepthConfig is the stereo matcher configuration understood by the
// StereoDepth node's "inputConfig" port.
type RawStereoDepthConfig struct {
	ConfidenceThreshold     int  `json:"confidence_threshold"`
	LeftRightCheckThreshold int  `json:"lr_check_threshold"`
	ExtendedDisparity       bool `json:"extended_disparity"`
	Subpixel                bool `json:"subpixel"`
	BilateralFilterSigma    int  `json:"bilateral_sigma"`
	ThresholdMinRange       int  `json:"threshold_min_range"`
	ThresholdMaxRange       int  `json:"threshold_max_range"`
}

// DefaultStereoDepthConfig mirrors the firmware defaults.
func DefaultStereoDepthConfig() RawStereoDepthConfig {
	return RawStereoDepthConfig{
		ConfidenceThreshold:     245,
		LeftRightCheckThreshold: 10,
		ThresholdMinRange:       100,
		ThresholdMaxRange:       10000,
	}
}

// MaxDisparity returns the matcher search range implied by the configuration.
func (c RawStereoDepthConfig) MaxDisparity() float64 {
	max := 95.0
	if c.ExtendedDisparity {
		max *= 2
	}
	if c.Subpixel {
		max *= 8
	}
	return max
}
