package sheet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/jhoicas/inventario-planilla/internal/domain"
	"github.com/jhoicas/inventario-planilla/internal/domain/inventory"
)

// Formatos de exportación de la planilla publicada.
const (
	FormatCSV  = "csv"
	FormatHTML = "html"
	FormatAuto = "auto"
)

const maxBodyBytes = 10 << 20

// Config parámetros del lector de la planilla.
type Config struct {
	URL       string
	Format    string        // csv (por defecto), html o auto
	TableHint string        // pista para elegir la tabla en la exportación HTML
	Timeout   time.Duration // 0 = 15 s
}

// HTTPFetcher descarga la planilla publicada y la convierte en filas.
// No reintenta: cualquier fallo se devuelve para que el llamador decida el fallback.
type HTTPFetcher struct {
	cfg        Config
	httpClient *http.Client
}

// NewHTTPFetcher construye el lector con el timeout configurado.
func NewHTTPFetcher(cfg Config) *HTTPFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Format == "" {
		cfg.Format = FormatCSV
	}
	return &HTTPFetcher{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Fetch hace un GET a la URL publicada y devuelve las filas de datos.
// Un estado no 2xx, un cuerpo vacío o cero filas son errores.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]inventory.Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("planilla: construir request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/html;q=0.9, */*;q=0.5")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("planilla: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := decodeBody(io.LimitReader(resp.Body, maxBodyBytes), contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: leer cuerpo: %v", domain.ErrRemoteUnavailable, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: cuerpo vacío", domain.ErrEmptyPayload)
	}

	var rows []inventory.Row
	switch detectFormat(f.cfg.Format, contentType, body) {
	case FormatHTML:
		rows = ExtractTable(bytes.NewReader(body), f.cfg.TableHint)
	default:
		for row := range ParseCSV(bytes.NewReader(body)) {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: 0 filas", domain.ErrEmptyPayload)
	}
	return rows, nil
}

// decodeBody lee el cuerpo y lo pasa a UTF-8 cuando el Content-Type declara otro charset.
func decodeBody(r io.Reader, contentType string) ([]byte, error) {
	charset := ""
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		charset = strings.ToLower(strings.TrimSpace(params["charset"]))
	}
	if charset == "" || charset == "utf-8" || charset == "utf8" {
		return io.ReadAll(r)
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		// Charset desconocido: se lee tal cual.
		return io.ReadAll(r)
	}
	return io.ReadAll(enc.NewDecoder().Reader(r))
}

func detectFormat(configured, contentType string, body []byte) string {
	switch configured {
	case FormatCSV, FormatHTML:
		return configured
	}
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch {
	case strings.Contains(mediaType, "html"):
		return FormatHTML
	case strings.Contains(mediaType, "csv"):
		return FormatCSV
	case bytes.HasPrefix(bytes.TrimSpace(body), []byte("<")):
		return FormatHTML
	}
	return FormatCSV
}
