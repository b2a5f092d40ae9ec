package bridge

import (
	"github.com/jdavidberger/depthai-ros/internal/convert"
	"github.com/jdavidberger/depthai-ros/internal/depthai"
	"github.com/jdavidberger/depthai-ros/internal/events"
	"github.com/jdavidberger/depthai-ros/internal/metrics"
	"github.com/jdavidberger/depthai-ros/internal/publish"
)

// mapperFn attempts to claim one (producer node, output port) pair for a
// known node variant. Claimed stops the scan; unclaimed falls through to the
// next candidate. Errors are setup-time failures and abort construction.
type mapperFn func(xout *depthai.XLinkOut, producer depthai.Node, port string) (claimed bool, err error)

// mapOutputs walks every output endpoint in the graph and resolves each
// upstream connection to a publisher. Runs after pipeline start: output
// queues only exist on a running device.
func (p *PipelinePublisher) mapOutputs() error {
	for _, n := range p.pipeline.Nodes() {
		xout, ok := n.(*depthai.XLinkOut)
		if !ok {
			continue
		}
		for _, conn := range p.pipeline.ConnectionsTo(xout.ID()) {
			producer := p.pipeline.Node(conn.OutputID)
			if producer == nil {
				continue
			}
			if err := p.mapOutputStream(xout, producer, conn.OutputName); err != nil {
				return err
			}
		}
	}
	return nil
}

// mapOutputStream tries each known variant in priority order. An exhausted
// list is a warning, not a failure: the rest of the pipeline still publishes.
func (p *PipelinePublisher) mapOutputStream(xout *depthai.XLinkOut, producer depthai.Node, port string) error {
	for _, mapper := range p.mappers {
		claimed, err := mapper(xout, producer, port)
		if err != nil {
			return err
		}
		if claimed {
			return nil
		}
	}

	p.logger.Warn("could not generate publisher for device output",
		"stream", xout.StreamName(), "node", producer.Name(), "port", port)
	metrics.OutputsUnmapped.Inc()
	p.bus.Publish(events.OutputUnmappedEvent{
		Stream: xout.StreamName(),
		Node:   producer.Name(),
		Port:   port,
	})
	return nil
}

// addImagePublisher registers an image converter + publisher pair in the
// lifetime registry and starts publishing.
func (p *PipelinePublisher) addImagePublisher(queue *depthai.DataOutputQueue, channel string, conv *convert.ImageConverter, info *convert.CameraInfo) {
	pub := publish.New(queue, p.conn, channel, conv.Convert, p.queueDepth, info, p.logger)
	p.converters = append(p.converters, conv)
	p.publishers = append(p.publishers, pub)
	pub.StartPublishing()

	ev := events.PublisherCreatedEvent{
		Channel: channel,
		Stream:  queue.Name(),
		FrameID: conv.FrameID(),
	}
	if info != nil {
		ev.Width, ev.Height = info.Width, info.Height
	}
	p.bus.Publish(ev)
	p.logger.Info("publisher created", "channel", channel, "stream", queue.Name(), "frame", conv.FrameID())
}
