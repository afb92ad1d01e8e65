package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryMetrics_ExportaContadoresEHistograma(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewInventoryMetrics(reg)

	m.IncRefresh("loaded")
	m.IncRefresh("fallback")
	m.IncRefresh("fallback")
	m.IncMovement("ENTRADA")
	m.IncForwardFailure("")
	m.ObserveFetch(250 * time.Millisecond)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	assert.Equal(t, 1.0, counterValue(t, mfs, "sheet_refresh_total", "status", "loaded"))
	assert.Equal(t, 2.0, counterValue(t, mfs, "sheet_refresh_total", "status", "fallback"))
	assert.Equal(t, 1.0, counterValue(t, mfs, "movements_recorded_total", "kind", "ENTRADA"))
	assert.Equal(t, 1.0, counterValue(t, mfs, "forward_failures_total", "kind", "unknown"))

	hist := findMetricFamily(mfs, "sheet_fetch_duration_seconds")
	require.NotNil(t, hist)
	require.Len(t, hist.GetMetric(), 1)
	assert.EqualValues(t, 1, hist.GetMetric()[0].GetHistogram().GetSampleCount())
	assert.InDelta(t, 0.25, hist.GetMetric()[0].GetHistogram().GetSampleSum(), 1e-9)
}

func TestInventoryMetrics_NilNoFalla(t *testing.T) {
	var m *InventoryMetrics
	assert.NotPanics(t, func() {
		m.IncRefresh("loaded")
		m.IncMovement("SALIDA")
		m.IncForwardFailure("SALIDA")
		m.ObserveFetch(time.Second)
	})

	unregistered := NewInventoryMetrics(nil)
	assert.NotPanics(t, func() { unregistered.IncRefresh("loaded") })
}

func counterValue(t *testing.T, mfs []*dto.MetricFamily, name, label, value string) float64 {
	t.Helper()
	mf := findMetricFamily(mfs, name)
	require.NotNil(t, mf, "métrica %q no encontrada", name)
	for _, metric := range mf.GetMetric() {
		for _, lp := range metric.GetLabel() {
			if lp.GetName() == label && lp.GetValue() == value {
				return metric.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("métrica %q sin etiqueta %s=%s", name, label, value)
	return 0
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}
