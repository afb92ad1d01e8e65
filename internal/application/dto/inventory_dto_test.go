package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-planilla/internal/domain/inventory"
)

func TestFlexibleNumber(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"quantity": 5}`, "5"},
		{`{"quantity": "12"}`, "12"},
		{`{"quantity": "1.299,99 €"}`, "1299.99"},
		{`{"quantity": 2.5}`, "2.5"},
		{`{"quantity": "abc"}`, "0"},
		{`{"quantity": null}`, "0"},
		{`{"quantity": -3}`, "0"},
		{`{}`, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req MovementRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.True(t, req.Quantity.Equal(decimal.RequireFromString(tt.want)), "got %s", req.Quantity)
		})
	}
}

func TestFlexibleNumber_TipoInvalido(t *testing.T) {
	var req MovementRequest
	assert.Error(t, json.Unmarshal([]byte(`{"quantity": true}`), &req))
}

func TestMovementRequest_DescriptionValue(t *testing.T) {
	assert.Equal(t, "A", MovementRequest{Description: " A ", Descripcion: "B"}.DescriptionValue())
	assert.Equal(t, "B", MovementRequest{Descripcion: "B"}.DescriptionValue())
}

func TestNewSyncResponse(t *testing.T) {
	out := inventory.Outcome{
		Status:   inventory.StatusFallback,
		Snapshot: inventory.SampleSnapshot(),
		Err:      errors.New("HTTP 500"),
	}

	resp := NewSyncResponse(out)

	assert.Equal(t, "fallback", resp.Status)
	assert.Equal(t, "HTTP 500", resp.Error)
	assert.Equal(t, 5, resp.Stock)
	assert.Equal(t, []string{"stock", "entradas", "salidas"}, resp.SampleBuckets)
}
