package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// InjectionMetrics aggregates the Prometheus instruments of the fulfillment
// pipeline. A nil receiver is a no-op so tests can skip registration.
type InjectionMetrics struct {
	OrdersCreatedTotal   *prometheus.CounterVec
	OrdersFulfilledGauge *prometheus.GaugeVec

	InjectionsTotal    *prometheus.CounterVec
	InjectionDuration  *prometheus.HistogramVec
	InjectionsInFlight prometheus.Gauge

	BrokerAssignmentsTotal *prometheus.CounterVec
	ProxyFailuresTotal     prometheus.Counter
	ProxyProbeDuration     prometheus.Histogram
}

func NewInjectionMetrics() *InjectionMetrics {
	return &InjectionMetrics{
		OrdersCreatedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fulfillment_orders_created_total",
				Help: "Orders created, labeled by resulting fulfillment status.",
			},
			[]string{"status"},
		),
		OrdersFulfilledGauge: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fulfillment_orders_leads_fulfilled",
				Help: "Leads reserved per lead category for the latest orders.",
			},
			[]string{"lead_type"},
		),
		InjectionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fulfillment_injections_total",
				Help: "Submission attempts, labeled by outcome.",
			},
			[]string{"outcome"},
		),
		InjectionDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fulfillment_injection_duration_seconds",
				Help:    "Wall time of a single submission attempt.",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"outcome"},
		),
		InjectionsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "fulfillment_injections_in_flight",
				Help: "Submission tasks currently running.",
			},
		),
		BrokerAssignmentsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fulfillment_broker_assignments_total",
				Help: "Broker assignments, labeled by source (auto or manual).",
			},
			[]string{"source"},
		),
		ProxyFailuresTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "fulfillment_proxy_failures_total",
				Help: "Proxy acquisitions or probes that failed.",
			},
		),
		ProxyProbeDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fulfillment_proxy_probe_duration_seconds",
				Help:    "Latency of proxy connectivity probes.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

func (m *InjectionMetrics) RecordOrderCreated(status string) {
	if m == nil {
		return
	}
	m.OrdersCreatedTotal.WithLabelValues(status).Inc()
}

func (m *InjectionMetrics) RecordFulfilled(leadType string, count int) {
	if m == nil {
		return
	}
	m.OrdersFulfilledGauge.WithLabelValues(leadType).Set(float64(count))
}

func (m *InjectionMetrics) RecordInjection(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.InjectionsTotal.WithLabelValues(outcome).Inc()
	m.InjectionDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *InjectionMetrics) InjectionStarted() {
	if m == nil {
		return
	}
	m.InjectionsInFlight.Inc()
}

func (m *InjectionMetrics) InjectionFinished() {
	if m == nil {
		return
	}
	m.InjectionsInFlight.Dec()
}

func (m *InjectionMetrics) RecordBrokerAssignment(source string) {
	if m == nil {
		return
	}
	m.BrokerAssignmentsTotal.WithLabelValues(source).Inc()
}

func (m *InjectionMetrics) RecordProxyFailure() {
	if m == nil {
		return
	}
	m.ProxyFailuresTotal.Inc()
}
