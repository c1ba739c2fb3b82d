package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// LedgerMetrics métricas de operaciones del extracto y del transporte HTTP.
type LedgerMetrics struct {
	operations  *prometheus.CounterVec
	amounts     *prometheus.HistogramVec
	rejected    prometheus.Counter
	customers   prometheus.Gauge
	httpLatency *prometheus.HistogramVec
}

// NewLedgerMetrics registra las métricas en registry.
func NewLedgerMetrics(registry *prometheus.Registry) *LedgerMetrics {
	f := promauto.With(registry)
	return &LedgerMetrics{
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Operaciones aceptadas en extractos, por tipo",
		}, []string{"type"}),
		amounts: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_operation_amount",
			Help:    "Distribución de montos por tipo de operación",
			Buckets: prometheus.ExponentialBuckets(1, 10, 7), // 1 .. 1e6
		}, []string{"type"}),
		rejected: f.NewCounter(prometheus.CounterOpts{
			Name: "ledger_withdrawals_rejected_total",
			Help: "Retiros rechazados por saldo insuficiente",
		}),
		customers: f.NewGauge(prometheus.GaugeOpts{
			Name: "ledger_customers",
			Help: "Clientes registrados",
		}),
		httpLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de peticiones HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// ObserveOperation cuenta una operación aceptada y su monto.
func (m *LedgerMetrics) ObserveOperation(opType entity.OperationType, amount decimal.Decimal) {
	m.operations.WithLabelValues(string(opType)).Inc()
	m.amounts.WithLabelValues(string(opType)).Observe(amount.InexactFloat64())
}

// IncRejectedWithdrawal cuenta un retiro rechazado.
func (m *LedgerMetrics) IncRejectedWithdrawal() {
	m.rejected.Inc()
}

// SetCustomers fija el número de clientes registrados.
func (m *LedgerMetrics) SetCustomers(n int) {
	m.customers.Set(float64(n))
}

// ObserveHTTPRequest registra la latencia de una petición.
func (m *LedgerMetrics) ObserveHTTPRequest(method, route, status string, seconds float64) {
	m.httpLatency.WithLabelValues(method, route, status).Observe(seconds)
}
