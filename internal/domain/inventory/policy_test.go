package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-planilla/internal/domain"
	"github.com/jhoicas/inventario-planilla/internal/domain/inventory"
)

func TestResolve_Loaded(t *testing.T) {
	rows := []inventory.Row{typedRow("001", "Stock", "1")}

	out := inventory.Resolve(context.Background(), rows, nil, fixedNow)

	assert.Equal(t, inventory.StatusLoaded, out.Status)
	assert.NoError(t, out.Err)
	require.Len(t, out.Snapshot.Stock, 1)
	assert.Equal(t, "001", out.Snapshot.Stock[0].Code)
}

func TestResolve_ErrorDeLecturaUsaEjemplos(t *testing.T) {
	fetchErr := errors.New("dial tcp: connection refused")

	out := inventory.Resolve(context.Background(), nil, fetchErr, fixedNow)

	assert.Equal(t, inventory.StatusFallback, out.Status)
	assert.ErrorIs(t, out.Err, fetchErr)
	assert.Equal(t, inventory.SampleStock(), out.Snapshot.Stock)
	assert.Equal(t, inventory.SampleEntradas(), out.Snapshot.Entradas)
	assert.Equal(t, inventory.SampleSalidas(), out.Snapshot.Salidas)
}

func TestResolve_SinFilasUsaEjemplos(t *testing.T) {
	out := inventory.Resolve(context.Background(), []inventory.Row{}, nil, fixedNow)

	assert.Equal(t, inventory.StatusFallback, out.Status)
	assert.ErrorIs(t, out.Err, domain.ErrEmptyPayload)
	assert.NotEmpty(t, out.Snapshot.Stock)
}

func TestResolve_CancelacionDelLlamador(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := inventory.Resolve(ctx, nil, context.Canceled, fixedNow)

	assert.Equal(t, inventory.StatusFailed, out.Status)
	assert.ErrorIs(t, out.Err, context.Canceled)
	assert.Empty(t, out.Snapshot.Stock)
}
