package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_queries_total",
			Help: "Total number of processed queries by intent and language",
		},
		[]string{"intent", "language"},
	)

	QueriesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_queries_rejected_total",
			Help: "Total number of queries rejected before analysis",
		},
		[]string{"reason"},
	)

	InferenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_inference_failures_total",
			Help: "Total number of failed inference capability calls",
		},
		[]string{"capability"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_query_duration_seconds",
			Help: "Duration of query processing in seconds",
		},
		[]string{"intent"},
	)
)

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
