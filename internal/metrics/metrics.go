// Package metrics collects and exposes Prometheus metrics for the
// intake pipeline.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the handlers depend on; keeps them testable without
// a registry.
type Recorder interface {
	RecordAccepted()
	RecordRejected(kind string)
	RecordFault()
	RecordHTTPStatus(statusCode int)
}

type Collector struct {
	accepted   prometheus.Counter
	rejected   *prometheus.CounterVec
	faults     prometheus.Counter
	httpStatus *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "intake_accepted_total",
			Help: "Appointment requests accepted and persisted.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_rejected_total",
			Help: "Appointment requests rejected, by rejection kind.",
		}, []string{"kind"}),
		faults: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "intake_faults_total",
			Help: "Unexpected faults surfaced to the error boundary.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_http_status_total",
			Help: "Responses by HTTP status code.",
		}, []string{"status_code"}),
	}

	reg.MustRegister(c.accepted, c.rejected, c.faults, c.httpStatus)
	return c
}

func (c *Collector) RecordAccepted() {
	c.accepted.Inc()
}

func (c *Collector) RecordRejected(kind string) {
	c.rejected.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordFault() {
	c.faults.Inc()
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler exposes the registry at /metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
