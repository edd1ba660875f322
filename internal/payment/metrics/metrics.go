// Package metrics provides Prometheus metrics for the payment pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all payment pipeline metrics.
type Metrics struct {
	// Pipeline outcomes
	PaymentsTotal        *prometheus.CounterVec // terminal payments by status (authorized, declined)
	PaymentFailuresTotal *prometheus.CounterVec // failed pipeline invocations by reason

	// Downstream client
	BankRequestDurationSeconds *prometheus.HistogramVec // bank call latency by outcome
	BankRetriesTotal           prometheus.Counter       // retries consumed by the bank client
	CircuitOpenTotal           prometheus.Counter       // circuit breaker trips
}

// New creates a new Metrics instance with all metrics registered.
func New() *Metrics {
	return &Metrics{
		PaymentsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "paygate_payments_total",
			Help: "Total number of completed payments by terminal status",
		}, []string{"status"}),

		PaymentFailuresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "paygate_payment_failures_total",
			Help: "Total number of failed payment attempts by failure reason",
		}, []string{"reason"}),

		BankRequestDurationSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "paygate_bank_request_duration_seconds",
			Help:    "Duration of downstream bank authorization calls by outcome",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"outcome"}),

		BankRetriesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "paygate_bank_retries_total",
			Help: "Total number of retries issued by the bank client",
		}),

		CircuitOpenTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "paygate_bank_circuit_open_total",
			Help: "Total number of times the bank circuit breaker opened",
		}),
	}
}

// RecordPayment records a terminal payment outcome. Nil-safe so callers can
// run without metrics wired (tests).
func (m *Metrics) RecordPayment(status string) {
	if m == nil {
		return
	}
	m.PaymentsTotal.WithLabelValues(status).Inc()
}

// RecordFailure records a failed pipeline invocation by reason.
func (m *Metrics) RecordFailure(reason string) {
	if m == nil {
		return
	}
	m.PaymentFailuresTotal.WithLabelValues(reason).Inc()
}

// ObserveBankRequest records the duration of one bank call attempt.
func (m *Metrics) ObserveBankRequest(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.BankRequestDurationSeconds.WithLabelValues(outcome).Observe(seconds)
}

// RecordRetry records one consumed retry.
func (m *Metrics) RecordRetry() {
	if m == nil {
		return
	}
	m.BankRetriesTotal.Inc()
}

// RecordCircuitOpen records a circuit breaker trip.
func (m *Metrics) RecordCircuitOpen() {
	if m == nil {
		return
	}
	m.CircuitOpenTotal.Inc()
}
