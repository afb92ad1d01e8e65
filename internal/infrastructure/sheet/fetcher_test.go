package sheet_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/inventario-planilla/internal/domain"
	"github.com/jhoicas/inventario-planilla/internal/infrastructure/sheet"
)

func newSheetServer(t *testing.T, status int, contentType string, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPFetcher_CSV(t *testing.T) {
	srv := newSheetServer(t, http.StatusOK, "text/csv; charset=utf-8",
		[]byte("Código,Quantidade,Tipo\n001,15,Stock\n001,5,Entrada\n"))

	rows, err := sheet.NewHTTPFetcher(sheet.Config{URL: srv.URL}).Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Entrada", rows[1]["Tipo"])
}

func TestHTTPFetcher_HTMLAuto(t *testing.T) {
	srv := newSheetServer(t, http.StatusOK, "text/html; charset=utf-8", []byte(publishedHTML))

	f := sheet.NewHTTPFetcher(sheet.Config{URL: srv.URL, Format: sheet.FormatAuto, TableHint: "Stock"})
	rows, err := f.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "001", rows[0]["Código"])
}

func TestHTTPFetcher_DecodificaCharset(t *testing.T) {
	body, err := charmap.Windows1252.NewEncoder().Bytes([]byte("Código,Descrição\n7,Ratón\n"))
	require.NoError(t, err)
	srv := newSheetServer(t, http.StatusOK, "text/csv; charset=windows-1252", body)

	rows, err := sheet.NewHTTPFetcher(sheet.Config{URL: srv.URL}).Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "7", rows[0]["Código"])
	assert.Equal(t, "Ratón", rows[0]["Descrição"])
}

func TestHTTPFetcher_Errores(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"estado no 2xx", http.StatusNotFound, "Código\n1\n", domain.ErrRemoteUnavailable},
		{"cuerpo vacío", http.StatusOK, "  \n", domain.ErrEmptyPayload},
		{"solo encabezado", http.StatusOK, "Código,Nota\n", domain.ErrEmptyPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newSheetServer(t, tt.status, "text/csv", []byte(tt.body))

			rows, err := sheet.NewHTTPFetcher(sheet.Config{URL: srv.URL}).Fetch(context.Background())

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, rows)
		})
	}
}

func TestHTTPFetcher_ServidorCaido(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := sheet.NewHTTPFetcher(sheet.Config{URL: url, Timeout: time.Second}).Fetch(context.Background())

	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
}

func TestHTTPFetcher_Cancelacion(t *testing.T) {
	srv := newSheetServer(t, http.StatusOK, "text/csv", []byte("Código\n1\n"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sheet.NewHTTPFetcher(sheet.Config{URL: srv.URL}).Fetch(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
