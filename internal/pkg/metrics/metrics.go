package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the service counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	authSuccesses      *prometheus.CounterVec
	authFailures       *prometheus.CounterVec
	tokenGenerations   *prometheus.CounterVec
	developerMutations *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		authSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_successes_total",
			Help: "Count of successful authentications",
		}, []string{"method"}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_failures_total",
			Help: "Count of failed authentications",
		}, []string{"method"}),
		tokenGenerations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_token_generations_total",
			Help: "Count of auth tokens created",
		}, []string{"method"}),
		developerMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "developer_mutations_total",
			Help: "Count of developer profile writes",
		}, []string{"op"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.authSuccesses,
			m.authFailures,
			m.tokenGenerations,
			m.developerMutations,
			m.requestDuration,
		)
	}
	return m
}

func (m *Metrics) AuthSucceeded(method string) {
	if m == nil {
		return
	}
	m.authSuccesses.WithLabelValues(method).Inc()
}

func (m *Metrics) AuthFailed(method string) {
	if m == nil {
		return
	}
	m.authFailures.WithLabelValues(method).Inc()
}

func (m *Metrics) TokenGenerated(method string) {
	if m == nil {
		return
	}
	m.tokenGenerations.WithLabelValues(method).Inc()
}

func (m *Metrics) DeveloperMutated(op string) {
	if m == nil {
		return
	}
	m.developerMutations.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(d.Seconds())
}
