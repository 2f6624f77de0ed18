package obs

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Reconcile outcomes.
const (
	OutcomeSkipped    = "skipped"
	OutcomeNotStarted = "not_started"
	OutcomeDeparted   = "departed"
	OutcomeReturned   = "returned"
	OutcomeError      = "error"
)

var (
	// OperationDuration observes every obs.Time span.
	OperationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fieldops_operation_duration_seconds",
		Help:    "Duration of timed internal operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	// ReconcileTotal counts reconciliations by outcome.
	ReconcileTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fieldops_reconcile_total",
		Help: "Vehicle timestamp reconciliations by outcome",
	}, []string{"outcome"})

	// HTTPRequests counts served requests by route pattern and status.
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fieldops_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by route pattern.
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fieldops_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Register registers the service collectors on reg. A nil registerer
// defaults to the global Prometheus registerer. Collectors that are already
// registered are reused.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	collectors := []prometheus.Collector{OperationDuration, ReconcileTotal, HTTPRequests, HTTPDuration}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}
