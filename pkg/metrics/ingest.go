package metrics

import "github.com/prometheus/client_golang/prometheus"

var LoadsMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "chartdesk_loads_total",
		Help: "number of file loads by result",
	}, []string{"result"})

var ParsedBarsMetrics = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "chartdesk_parsed_bars_total",
		Help: "number of bars accepted by the parser",
	})

var SkippedRowsMetrics = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "chartdesk_skipped_rows_total",
		Help: "number of data rows dropped by the parser",
	})

// ObserveLoad records the outcome of one ingestion. err is the structural or file type error, if any.
func ObserveLoad(bars, skipped int, err error) {
	if err != nil {
		LoadsMetrics.WithLabelValues("rejected").Inc()
		return
	}

	LoadsMetrics.WithLabelValues("accepted").Inc()
	ParsedBarsMetrics.Add(float64(bars))
	SkippedRowsMetrics.Add(float64(skipped))
}

func init() {
	prometheus.MustRegister(LoadsMetrics, ParsedBarsMetrics, SkippedRowsMetrics)
}
