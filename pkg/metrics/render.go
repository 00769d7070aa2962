package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var RenderDurationMetrics = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "chartdesk_render_duration_seconds",
		Help:    "time spent rendering chart images",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"layer", "format"})

var DegenerateRangeMetrics = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "chartdesk_degenerate_price_range_total",
		Help: "number of render models that fell back to the default price range",
	})

// ObserveRender records how long rendering the given layer took since start.
func ObserveRender(layer, format string, start time.Time) {
	RenderDurationMetrics.WithLabelValues(layer, format).Observe(time.Since(start).Seconds())
}

func init() {
	prometheus.MustRegister(RenderDurationMetrics, DegenerateRangeMetrics)
}
