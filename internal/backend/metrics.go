package backend

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	opHealth     = "health"
	opCompletion = "completion"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aiengine",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Total number of calls made to the llama server",
		},
		[]string{"op", "outcome"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aiengine",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Duration of llama server calls in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration)
}

func observe(op, outcome string, d time.Duration) {
	requestsTotal.WithLabelValues(op, outcome).Inc()
	requestDuration.WithLabelValues(op).Observe(d.Seconds())
}
