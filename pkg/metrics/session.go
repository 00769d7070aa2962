package metrics

import "github.com/prometheus/client_golang/prometheus"

var ActiveSessionsMetrics = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "chartdesk_active_sessions",
		Help: "number of open viewing sessions",
	})

var CommittedShapesMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "chartdesk_committed_shapes_total",
		Help: "number of committed annotation shapes by kind",
	}, []string{"kind"})

var AnnotationResetsMetrics = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "chartdesk_annotation_resets_total",
		Help: "number of annotation resets",
	})

var WebsocketClientsMetrics = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "chartdesk_websocket_clients",
		Help: "number of connected annotation event clients",
	})

func init() {
	prometheus.MustRegister(ActiveSessionsMetrics, CommittedShapesMetrics, AnnotationResetsMetrics, WebsocketClientsMetrics)
}
