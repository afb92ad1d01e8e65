package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// InventoryMetrics registra las cargas de la planilla y los movimientos.
// Un valor nil o construido sin registro ignora todas las observaciones.
type InventoryMetrics struct {
	refresh         *prometheus.CounterVec
	movements       *prometheus.CounterVec
	forwardFailures *prometheus.CounterVec
	fetchDuration   prometheus.Histogram
}

// NewInventoryMetrics registra las métricas en reg.
func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	refresh := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sheet_refresh_total",
		Help: "Cargas de la planilla por resultado (loaded, fallback, failed).",
	}, []string{"status"})
	movements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "movements_recorded_total",
		Help: "Movimientos registrados por tipo.",
	}, []string{"kind"})
	forwardFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forward_failures_total",
		Help: "Reenvíos de movimientos que fallaron, por tipo.",
	}, []string{"kind"})
	fetchDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sheet_fetch_duration_seconds",
		Help:    "Duración de la descarga de la planilla en segundos.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(refresh, movements, forwardFailures, fetchDuration)
	return &InventoryMetrics{
		refresh:         refresh,
		movements:       movements,
		forwardFailures: forwardFailures,
		fetchDuration:   fetchDuration,
	}
}

// IncRefresh cuenta una carga con el estado dado.
func (m *InventoryMetrics) IncRefresh(status string) {
	if m == nil || m.refresh == nil {
		return
	}
	m.refresh.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncMovement cuenta un movimiento registrado.
func (m *InventoryMetrics) IncMovement(kind string) {
	if m == nil || m.movements == nil {
		return
	}
	m.movements.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncForwardFailure cuenta un reenvío fallido.
func (m *InventoryMetrics) IncForwardFailure(kind string) {
	if m == nil || m.forwardFailures == nil {
		return
	}
	m.forwardFailures.WithLabelValues(normalizeLabel(kind)).Inc()
}

// ObserveFetch registra la duración de una descarga.
func (m *InventoryMetrics) ObserveFetch(d time.Duration) {
	if m == nil || m.fetchDuration == nil {
		return
	}
	m.fetchDuration.Observe(d.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
