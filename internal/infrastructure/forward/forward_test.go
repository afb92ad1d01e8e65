package forward_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/jhoicas/inventario-planilla/internal/domain/entity"
	"github.com/jhoicas/inventario-planilla/internal/infrastructure/forward"
	"github.com/jhoicas/inventario-planilla/pkg/logger"
)

var movement = entity.Movement{
	Kind: entity.KindEntrada,
	InventoryRecord: entity.InventoryRecord{
		ID:          "mv-1",
		Code:        "001",
		Quantity:    decimal.NewFromInt(5),
		Price:       decimal.RequireFromString("12.5"),
		LastUpdated: "26/03/2025 12:00",
	},
}

func TestWebhookForwarder_PublicaJSON(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := forward.NewWebhookForwarder(srv.URL, 0).Forward(context.Background(), movement)

	require.NoError(t, err)
	assert.Equal(t, "ENTRADA", got["kind"])
	assert.Equal(t, "mv-1", got["id"])
	assert.Equal(t, "001", got["code"])
	assert.Equal(t, "5", got["quantity"])
	assert.Equal(t, "12.5", got["price"])
}

func TestWebhookForwarder_EstadoNo2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := forward.NewWebhookForwarder(srv.URL, 0).Forward(context.Background(), movement)

	assert.ErrorContains(t, err, "HTTP 502")
}

type failingSink struct{ err error }

func (f failingSink) Forward(context.Context, entity.Movement) error { return f.err }

type countingSink struct{ calls int }

func (c *countingSink) Forward(context.Context, entity.Movement) error {
	c.calls++
	return nil
}

func TestMultiForwarder_EnviaATodosYCombinaErrores(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")
	counter := &countingSink{}
	m := forward.NewMultiForwarder(failingSink{errA}, nil, counter, failingSink{errB})

	err := m.Forward(context.Background(), movement)

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 1, counter.calls)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestMultiForwarder_SinErrores(t *testing.T) {
	m := forward.NewMultiForwarder(&countingSink{})

	assert.NoError(t, m.Forward(context.Background(), movement))
}

func TestLogForwarder(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	err := forward.NewLogForwarder(log).Forward(context.Background(), movement)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"code":"001"`)
	assert.Contains(t, buf.String(), `"kind":"ENTRADA"`)
}
