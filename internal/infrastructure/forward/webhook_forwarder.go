package forward

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/inventario-planilla/internal/domain/entity"
)

// WebhookForwarder publica cada movimiento como JSON en una URL (por ejemplo una
// aplicación web de Apps Script que escribe en la planilla).
type WebhookForwarder struct {
	url        string
	httpClient *http.Client
}

// NewWebhookForwarder construye el forwarder; timeout 0 usa 10 s.
func NewWebhookForwarder(url string, timeout time.Duration) *WebhookForwarder {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookForwarder{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Forward hace POST del movimiento. Un estado no 2xx es error.
func (f *WebhookForwarder) Forward(ctx context.Context, mv entity.Movement) error {
	body, err := json.Marshal(mv)
	if err != nil {
		return fmt.Errorf("webhook: serializar movimiento: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: construir request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: enviar: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook: HTTP %d", resp.StatusCode)
	}
	return nil
}
