// Package metrics exposes the bridge's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FramesPublished counts converted messages emitted per channel.
	FramesPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "depthai",
		Subsystem: "bridge",
		Name:      "frames_published_total",
		Help:      "Messages published per channel.",
	}, []string{"channel"})

	// ConvertErrors counts conversion failures per channel.
	ConvertErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "depthai",
		Subsystem: "bridge",
		Name:      "convert_errors_total",
		Help:      "Conversion failures per channel.",
	}, []string{"channel"})

	// PublishersLive tracks the number of active publishers.
	PublishersLive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "depthai",
		Subsystem: "bridge",
		Name:      "publishers_live",
		Help:      "Publishers created and running.",
	})

	// OutputsUnmapped counts output streams no builder claimed.
	OutputsUnmapped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "depthai",
		Subsystem: "bridge",
		Name:      "outputs_unmapped_total",
		Help:      "Output streams left unpublished by the mapping pass.",
	})

	// ControlUpdates counts configuration commands sent to the device.
	ControlUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "depthai",
		Subsystem: "bridge",
		Name:      "control_updates_total",
		Help:      "Configuration commands sent to the device, per control key.",
	}, []string{"key"})
)
