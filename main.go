package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/jdavidberger/depthai-ros/cmd"
	"github.com/jdavidberger/depthai-ros/internal/api"
	"github.com/jdavidberger/depthai-ros/internal/bridge"
	"github.com/jdavidberger/depthai-ros/internal/config"
	"github.com/jdavidberger/depthai-ros/internal/depthai"
	"github.com/jdavidberger/depthai-ros/internal/events"
	"github.com/jdavidberger/depthai-ros/internal/logging"
	"github.com/jdavidberger/depthai-ros/internal/natsio"
	"github.com/jdavidberger/depthai-ros/internal/systemd"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"HTTP address to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`

	// NATS settings. Empty URL runs an embedded server.
	NatsURL  string `help:"NATS server URL; empty starts an embedded server" toml:"nats.url" env:"NATS_URL"`
	NatsPort int    `help:"Embedded NATS server port" default:"4222" toml:"nats.port" env:"NATS_PORT"`

	// Pipeline settings
	PipelineFile        string `help:"Pipeline description file" default:"pipeline.toml" toml:"pipeline.file" env:"PIPELINE_FILE"`
	ControlDefaultsFile string `help:"Control defaults file, watched for changes" toml:"pipeline.control_defaults" env:"CONTROL_DEFAULTS_FILE"`

	// Bridge settings
	FramePrefix string `help:"Frame name prefix (default dai_<mxid>_)" toml:"bridge.frame_prefix" env:"FRAME_PREFIX"`
	QueueDepth  int    `help:"Device output queue depth" default:"30" toml:"bridge.queue_depth" env:"QUEUE_DEPTH"`

	// Disparity converter settings
	DisparityFocal    float64 `help:"Disparity focal length in pixels" default:"880" toml:"disparity.focal_length" env:"DISPARITY_FOCAL"`
	DisparityBaseline float64 `help:"Stereo baseline in centimeters" default:"7.5" toml:"disparity.baseline" env:"DISPARITY_BASELINE"`
	DisparityMinDepth float64 `help:"Minimum depth in millimeters" default:"20" toml:"disparity.min_depth" env:"DISPARITY_MIN_DEPTH"`
	DisparityMaxDepth float64 `help:"Maximum depth in millimeters" default:"2000" toml:"disparity.max_depth" env:"DISPARITY_MAX_DEPTH"`

	// Simulator settings
	SimulatorInterval string `help:"Synthetic frame interval" default:"33ms" toml:"simulator.interval" env:"SIMULATOR_INTERVAL"`

	// Logging settings
	LoggingLevel  string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingBridge string `help:"Bridge logging level" default:"info" toml:"logging.bridge" env:"LOGGING_BRIDGE"`
	LoggingNats   string `help:"NATS logging level" default:"info" toml:"logging.nats" env:"LOGGING_NATS"`
	LoggingAPI    string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"bridge": opts.LoggingBridge,
				"nats":   opts.LoggingNats,
				"api":    opts.LoggingAPI,
			},
		})
		logger := logging.GetLogger("main")

		// Build the pipeline graph from its description before touching
		// the network so a bad file fails fast.
		pf, err := config.LoadPipelineFile(opts.PipelineFile)
		if err != nil {
			logger.Error("Failed to load pipeline description", "path", opts.PipelineFile, "error", err)
			os.Exit(1)
		}
		pipeline, err := pf.Build()
		if err != nil {
			logger.Error("Invalid pipeline description", "path", opts.PipelineFile, "error", err)
			os.Exit(1)
		}

		mxid := pf.MxID
		if mxid == "" {
			mxid = "sim0001"
		}
		device := depthai.NewDevice(mxid, depthai.DefaultCalibration())

		eventBus := events.New()

		var natsServer *natsio.Server
		natsURL := opts.NatsURL
		if natsURL == "" {
			natsServer = natsio.NewServer(natsio.ServerOptions{
				Port:   opts.NatsPort,
				Logger: logging.GetLogger("nats"),
			})
			if startErr := natsServer.Start(); startErr != nil {
				logger.Error("Failed to start embedded NATS server", "error", startErr)
				os.Exit(1)
			}
			natsURL = natsServer.ClientURL()
		}

		nc, err := natsio.Connect(natsURL, "depthai-bridge", logging.GetLogger("nats"))
		if err != nil {
			logger.Error("Failed to connect to NATS", "url", natsURL, "error", err)
			os.Exit(1)
		}

		// Mirror bridge lifecycle events onto the bus for external
		// observers. Frames already ride their own subjects.
		forwardEvent := func(name string, ev any) {
			if data, marshalErr := json.Marshal(ev); marshalErr == nil {
				_ = nc.Publish(natsio.EventSubject(name), data)
			}
		}
		eventBus.Subscribe(func(e events.PublisherCreatedEvent) { forwardEvent("publisher_created", e) })
		eventBus.Subscribe(func(e events.OutputUnmappedEvent) { forwardEvent("output_unmapped", e) })
		eventBus.Subscribe(func(e events.ControlAppliedEvent) { forwardEvent("control_applied", e) })
		eventBus.Subscribe(func(e events.RegionOfInterestEvent) { forwardEvent("region_of_interest", e) })

		bridgeOpts := []bridge.Option{
			bridge.WithLogger(logging.GetLogger("bridge")),
			bridge.WithEventBus(eventBus),
			bridge.WithQueueDepth(opts.QueueDepth),
			bridge.WithDisparityDefaults(bridge.DisparityDefaults{
				FocalLength: opts.DisparityFocal,
				Baseline:    opts.DisparityBaseline,
				MinDepth:    opts.DisparityMinDepth,
				MaxDepth:    opts.DisparityMaxDepth,
			}),
		}
		if opts.FramePrefix != "" {
			bridgeOpts = append(bridgeOpts, bridge.WithFramePrefix(opts.FramePrefix))
		}

		pub, err := bridge.New(nc, device, pipeline, bridgeOpts...)
		if err != nil {
			logger.Error("Failed to set up pipeline bridge", "error", err)
			os.Exit(1)
		}
		logger.Info("Pipeline bridge ready",
			"device", device.MxID(),
			"publishers", len(pub.Publishers()),
			"control_servers", len(pub.CameraServers()))

		applyControlDefaults := func(cd config.ControlDefaults) {
			for socketName, defaults := range cd.Cameras {
				socket, parseErr := depthai.ParseSocket(socketName)
				if parseErr != nil {
					logger.Warn("Control defaults name an unknown socket", "socket", socketName)
					continue
				}
				srv := pub.CameraServer(socket)
				if srv == nil {
					logger.Warn("Control defaults name a socket with no control path", "socket", socketName)
					continue
				}
				if applyErr := srv.Apply(defaults.Control()); applyErr != nil {
					logger.Warn("Failed to apply camera defaults", "socket", socketName, "error", applyErr)
				}
			}
			if cd.Stereo != nil {
				if srv := pub.StereoServer(); srv != nil {
					if applyErr := srv.Apply(cd.Stereo.Apply(srv.Current())); applyErr != nil {
						logger.Warn("Failed to apply stereo defaults", "error", applyErr)
					}
				} else {
					logger.Warn("Control defaults configure stereo but the pipeline has no stereo node")
				}
			}
		}

		var defaultsWatcher *config.Watcher[config.ControlDefaults]
		if opts.ControlDefaultsFile != "" {
			if cd, loadErr := config.LoadControlDefaults(opts.ControlDefaultsFile); loadErr != nil {
				logger.Warn("Failed to load control defaults", "path", opts.ControlDefaultsFile, "error", loadErr)
			} else {
				applyControlDefaults(cd)
			}
			defaultsWatcher = config.NewWatcher(opts.ControlDefaultsFile, config.LoadControlDefaults, logger)
			defaultsWatcher.OnReload(applyControlDefaults)
		}

		interval, err := time.ParseDuration(opts.SimulatorInterval)
		if err != nil {
			interval = 33 * time.Millisecond
		}
		simulator := depthai.NewSimulator(device, interval, logger)

		server := api.NewServer(pub, logging.GetLogger("api"))
		watchdogCtx, stopWatchdog := context.WithCancel(context.Background())

		hooks.OnStart(func() {
			if startErr := simulator.Start(); startErr != nil {
				logger.Error("Failed to start frame simulator", "error", startErr)
				os.Exit(1)
			}

			if defaultsWatcher != nil {
				if startErr := defaultsWatcher.Start(); startErr != nil {
					logger.Warn("Failed to watch control defaults", "error", startErr)
				}
			}

			systemd.NotifyReady(logger)
			systemd.StartWatchdog(watchdogCtx, logger)

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			systemd.NotifyStopping(logger)
			stopWatchdog()
			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}
			if defaultsWatcher != nil {
				if stopErr := defaultsWatcher.Stop(); stopErr != nil {
					logger.Warn("Error stopping control defaults watcher", "error", stopErr)
				}
			}
			simulator.Stop()
			if drainErr := nc.Drain(); drainErr != nil {
				logger.Warn("Error draining NATS connection", "error", drainErr)
			}
			if natsServer != nil {
				natsServer.Stop()
			}
		})
	})

	cli.Root().AddCommand(cmd.CreateInspectCmd())
	cli.Run()
}
