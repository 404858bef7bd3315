package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

type PrometheusMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration prometheus.Histogram
	transfersTotal    *prometheus.CounterVec
	transferDuration  prometheus.Histogram
	transferAmount    prometheus.Histogram
	accountsCreated   *prometheus.CounterVec
	customersCreated  prometheus.Counter
	customersDeleted  prometheus.Counter
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		operationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_operations_total",
				Help: "Total number of debit/credit operations by type and status",
			},
			[]string{"operation", "status"},
		),
		operationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_operation_duration_milliseconds",
				Help:    "Debit/credit processing duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		transfersTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transfers_total",
				Help: "Total number of transfers processed",
			},
			[]string{"status"},
		),
		transferDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_transfer_duration_milliseconds",
				Help:    "Transfer processing duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		transferAmount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_transfer_amount",
				Help:    "Transfer amount in currency units",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
		),
		accountsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_created_total",
				Help: "Total number of accounts created by type",
			},
			[]string{"account_type"},
		),
		customersCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "customers_created_total",
				Help: "Total number of customers created",
			},
		),
		customersDeleted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "customers_deleted_total",
				Help: "Total number of customers deleted",
			},
		),
	}
}

func (m *PrometheusMetrics) RecordOperation(operationType, status string, duration time.Duration) {
	m.operationsTotal.WithLabelValues(operationType, status).Inc()
	m.operationDuration.Observe(float64(duration.Milliseconds()))
}

func (m *PrometheusMetrics) RecordTransfer(status string, duration time.Duration, amount decimal.Decimal) {
	m.transfersTotal.WithLabelValues(status).Inc()
	m.transferDuration.Observe(float64(duration.Milliseconds()))
	if status == "success" {
		amt, _ := amount.Float64()
		m.transferAmount.Observe(amt)
	}
}

func (m *PrometheusMetrics) RecordAccountCreated(accountType string) {
	m.accountsCreated.WithLabelValues(accountType).Inc()
}

func (m *PrometheusMetrics) RecordCustomerCreated() {
	m.customersCreated.Inc()
}

func (m *PrometheusMetrics) RecordCustomerDeleted() {
	m.customersDeleted.Inc()
}

// NoopMetrics discards all measurements. Tests use it so suites can build
// services repeatedly without re-registering prometheus collectors.
type NoopMetrics struct{}

func NewNoopMetrics() MetricsRecorderInterface { return &NoopMetrics{} }

func (m *NoopMetrics) RecordOperation(string, string, time.Duration) {}
func (m *NoopMetrics) RecordTransfer(string, time.Duration, decimal.Decimal) {}
func (m *NoopMetrics) RecordAccountCreated(string) {}
func (m *NoopMetrics) RecordCustomerCreated() {}
func (m *NoopMetrics) RecordCustomerDeleted() {}
