package bridge

import (
	"fmt"

	"github.com/jdavidberger/depthai-ros/internal/convert"
	"github.com/jdavidberger/depthai-ros/internal/depthai"
	"github.com/jdavidberger/depthai-ros/internal/events"
	"github.com/jdavidberger/depthai-ros/internal/publish"
)

// mapIMU claims IMU outputs on the fixed "imu" channel. No socket, no
// resolution, no intrinsics.
func (p *PipelinePublisher) mapIMU(xout *depthai.XLinkOut, producer depthai.Node, _ string) (bool, error) {
	if _, ok := producer.(*depthai.IMUNode); !ok {
		return false, nil
	}

	queue, err := p.device.OutputQueue(xout.StreamName(), p.queueDepth, false)
	if err != nil {
		return true, fmt.Errorf("imu output queue: %w", err)
	}

	conv := convert.NewImuConverter(p.framePrefix + "imu_frame")
	pub := publish.New(queue, p.conn, "imu", conv.Convert, p.queueDepth, nil, p.logger)
	p.keep(conv)
	p.publishers = append(p.publishers, pub)
	pub.StartPublishing()

	p.bus.Publish(events.PublisherCreatedEvent{
		Channel: "imu", Stream: queue.Name(), FrameID: conv.FrameID(),
	})
	p.logger.Info("publisher created", "channel", "imu", "stream", queue.Name())
	return true, nil
}
