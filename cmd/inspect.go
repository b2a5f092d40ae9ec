// Package cmd contains additional CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/jdavidberger/depthai-ros/internal/bridge"
	"github.com/jdavidberger/depthai-ros/internal/config"
	"github.com/jdavidberger/depthai-ros/internal/depthai"
	"github.com/jdavidberger/depthai-ros/internal/natsio"
)

// discardConn satisfies natsio.Conn without a server so the mapping pass can
// run as a dry run.
type discardConn struct{}

func (discardConn) Publish(string, []byte) error { return nil }

func (discardConn) Subscribe(string, nats.MsgHandler) (*nats.Subscription, error) {
	return nil, nil
}

// CreateInspectCmd returns a command that builds a pipeline description and
// prints the channels and control subjects the bridge would create for it,
// without connecting to NATS or real hardware.
func CreateInspectCmd() *cobra.Command {
	var framePrefix string

	cmd := &cobra.Command{
		Use:   "inspect <pipeline.toml>",
		Short: "Print the channel mapping for a pipeline description",
		Long: `Builds the pipeline graph from a TOML description, runs the same
output-mapping pass the daemon runs, and prints which publishing channels and
control subjects would exist. No device or NATS connection is needed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pf, err := config.LoadPipelineFile(args[0])
			if err != nil {
				return err
			}
			pipeline, err := pf.Build()
			if err != nil {
				return err
			}

			mxid := pf.MxID
			if mxid == "" {
				mxid = "inspect"
			}
			device := depthai.NewDevice(mxid, depthai.DefaultCalibration())

			// Mapping warnings go to stderr so the table stays clean.
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelWarn,
			}))

			opts := []bridge.Option{bridge.WithLogger(logger)}
			if framePrefix != "" {
				opts = append(opts, bridge.WithFramePrefix(framePrefix))
			}
			pub, err := bridge.New(discardConn{}, device, pipeline, opts...)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CHANNEL\tSUBJECT\tFRAME\tRESOLUTION")
			for _, p := range pub.Publishers() {
				frame, res := "-", "-"
				if ci := p.CameraInfo(); ci != nil {
					frame = ci.FrameID
					res = fmt.Sprintf("%dx%d", ci.Width, ci.Height)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Channel(), natsio.ChannelSubject(p.Channel()), frame, res)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout())
			w = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CONTROL\tSUBJECT")
			for _, srv := range pub.CameraServers() {
				fmt.Fprintf(w, "%s\t%s\n", srv.Socket(), natsio.ControlSubject(srv.Key()))
			}
			if stereo := pub.StereoServer(); stereo != nil {
				fmt.Fprintf(w, "stereo\t%s\n", natsio.ControlSubject(stereo.Key()))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&framePrefix, "frame-prefix", "", "Frame name prefix (default dai_<mxid>_)")
	return cmd
}
