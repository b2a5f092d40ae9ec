package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/jdavidberger/depthai-ros/internal/depthai"
)

// PipelineFile is the TOML description of a device pipeline: which sensor
// nodes exist, how the stereo pair is wired, and which outputs leave the
// device.
type PipelineFile struct {
	MxID         string         `toml:"mxid"`
	ColorCameras []ColorCamera  `toml:"color_camera"`
	MonoCameras  []MonoCamera   `toml:"mono_camera"`
	Stereo       *StereoSection `toml:"stereo"`
	IMU          *IMUSection    `toml:"imu"`
}

// ColorCamera describes one color sensor and its exported output ports.
type ColorCamera struct {
	Socket  string   `toml:"socket"`
	Width   int      `toml:"width"`
	Height  int      `toml:"height"`
	Outputs []string `toml:"outputs"`
}

// MonoCamera describes one mono sensor. Mono cameras feeding only the
// stereo node list no outputs.
type MonoCamera struct {
	Socket  string   `toml:"socket"`
	Width   int      `toml:"width"`
	Height  int      `toml:"height"`
	Outputs []string `toml:"outputs"`
}

// StereoSection describes the stereo matcher and its exported outputs.
type StereoSection struct {
	Align               string   `toml:"align"`
	Left                string   `toml:"left"`
	Right               string   `toml:"right"`
	Outputs             []string `toml:"outputs"`
	ConfidenceThreshold int      `toml:"confidence_threshold"`
	Subpixel            bool     `toml:"subpixel"`
	ExtendedDisparity   bool     `toml:"extended_disparity"`
}

// IMUSection enables the inertial stream.
type IMUSection struct {
	Enabled bool `toml:"enabled"`
}

// LoadPipelineFile parses a pipeline description from disk.
func LoadPipelineFile(path string) (*PipelineFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline file: %w", err)
	}
	var pf PipelineFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse pipeline file %s: %w", path, err)
	}
	return &pf, nil
}

// Build constructs the pipeline graph the description names. Every listed
// output becomes an XLinkOut endpoint wired to the producing port.
func (pf *PipelineFile) Build() (*depthai.Pipeline, error) {
	p := depthai.NewPipeline()
	monos := make(map[string]*depthai.MonoCamera)

	for _, cc := range pf.ColorCameras {
		socket, err := depthai.ParseSocket(cc.Socket)
		if err != nil {
			return nil, err
		}
		cam := depthai.NewColorCamera(socket)
		if cc.Width > 0 && cc.Height > 0 {
			cam.Video = depthai.Resolution{Width: cc.Width, Height: cc.Height}
			cam.Isp = cam.Video
		}
		p.Add(cam)
		for _, port := range cc.Outputs {
			if err := exportOutput(p, cam, port, fmt.Sprintf("%s_%s", socket, port)); err != nil {
				return nil, err
			}
		}
	}

	for _, mc := range pf.MonoCameras {
		socket, err := depthai.ParseSocket(mc.Socket)
		if err != nil {
			return nil, err
		}
		cam := depthai.NewMonoCamera(socket)
		if mc.Width > 0 && mc.Height > 0 {
			cam.Resolution = depthai.Resolution{Width: mc.Width, Height: mc.Height}
		}
		p.Add(cam)
		monos[mc.Socket] = cam
		for _, port := range mc.Outputs {
			if err := exportOutput(p, cam, port, fmt.Sprintf("%s_%s", socket, port)); err != nil {
				return nil, err
			}
		}
	}

	if pf.Stereo != nil {
		stereo := depthai.NewStereoDepth()
		if pf.Stereo.Align != "" {
			align, err := depthai.ParseSocket(pf.Stereo.Align)
			if err != nil {
				return nil, err
			}
			stereo.DepthAlign = align
		}
		if pf.Stereo.ConfidenceThreshold > 0 {
			stereo.InitialConfig.ConfidenceThreshold = pf.Stereo.ConfidenceThreshold
		}
		stereo.InitialConfig.Subpixel = pf.Stereo.Subpixel
		stereo.InitialConfig.ExtendedDisparity = pf.Stereo.ExtendedDisparity
		p.Add(stereo)

		for side, socketName := range map[string]string{"left": pf.Stereo.Left, "right": pf.Stereo.Right} {
			mono, ok := monos[socketName]
			if !ok {
				return nil, fmt.Errorf("stereo %s camera %q not declared as mono_camera", side, socketName)
			}
			if err := p.Link(mono, "out", stereo, side); err != nil {
				return nil, err
			}
		}

		for _, port := range pf.Stereo.Outputs {
			if err := exportOutput(p, stereo, port, "stereo_"+port); err != nil {
				return nil, err
			}
		}
	}

	if pf.IMU != nil && pf.IMU.Enabled {
		imu := depthai.NewIMU()
		p.Add(imu)
		if err := exportOutput(p, imu, "out", "imu"); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func exportOutput(p *depthai.Pipeline, producer depthai.Node, port, stream string) error {
	xout := depthai.NewXLinkOut(stream)
	p.Add(xout)
	return p.Link(producer, port, xout, "in")
}
