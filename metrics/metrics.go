package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	Calculations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCalculations,
			Help: HelpTextCalculations,
		},
	)

	ProspectionValue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameProspectionValue,
			Help: HelpTextProspectionValue,
		},
	)

	Exports = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameExports,
			Help: HelpTextExports,
		},
	)

	HistoryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHistoryErrors,
			Help: HelpTextHistoryErrors,
		},
		[]string{LabelOperation},
	)
)

// RecordCalculation bumps the business counters for one computed sale value
func RecordCalculation(value float64) {
	Calculations.Inc()
	// counters reject negative adds, values are non-negative for valid input
	if value > 0 {
		ProspectionValue.Add(value)
	}
}
