package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	dispatchTime = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "api_dispatch_seconds",
			Help:    "api dispatch time over http.",
			Buckets: []float64{0.005, 0.05, 0.5, 1, 5, 10, 30},
		},
	)

	totalAPICallsToRoute = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_api_calls_to_route", Help: "api calls by code, route and method"},
		[]string{"code", "route", "method"},
	)

	totalAPICalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_api_calls", Help: "api calls by code and method"},
		[]string{"code", "method"},
	)
)

func init() {
	prometheus.MustRegister(
		dispatchTime,
		totalAPICallsToRoute,
		totalAPICalls,
	)
}
