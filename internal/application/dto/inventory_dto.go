package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-planilla/internal/domain/entity"
	"github.com/jhoicas/inventario-planilla/internal/domain/inventory"
)

// FlexibleNumber acepta un número JSON o un texto ("15", "1.299,99 €").
// Un texto no numérico vale 0, igual que en la planilla.
type FlexibleNumber struct {
	decimal.Decimal
}

// UnmarshalJSON implementa json.Unmarshaler.
func (n *FlexibleNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		n.Decimal = decimal.Zero
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch v.(type) {
	case json.Number, string:
		n.Decimal = inventory.ParsePrice(v)
		return nil
	}
	return fmt.Errorf("se esperaba número o texto, llegó %s", string(b))
}

// MovementRequest body para POST /api/entradas y POST /api/salidas.
type MovementRequest struct {
	Code        string         `json:"code" validate:"required"`
	Description string         `json:"description"`
	Descripcion string         `json:"descripcion,omitempty"` // sinónimo aceptado de description
	Supplier    string         `json:"supplier"`
	Quantity    FlexibleNumber `json:"quantity" swaggertype:"string" example:"5"`
	Price       FlexibleNumber `json:"price" swaggertype:"string" example:"1299,99"`
	Note        string         `json:"note"`
}

// DescriptionValue devuelve description o, si está vacía, su sinónimo.
func (r MovementRequest) DescriptionValue() string {
	if d := strings.TrimSpace(r.Description); d != "" {
		return d
	}
	return strings.TrimSpace(r.Descripcion)
}

// RecordListResponse listado de stock, entradas o salidas.
type RecordListResponse struct {
	Total int                      `json:"total"`
	Items []entity.InventoryRecord `json:"items"`
}

// MovementListResponse listado de movimientos con su tipo.
type MovementListResponse struct {
	Total int               `json:"total"`
	Items []entity.Movement `json:"items"`
}

// SyncResponse resultado de un refresco forzado.
type SyncResponse struct {
	Status        string   `json:"status"` // loaded, fallback, failed
	Error         string   `json:"error,omitempty"`
	Stock         int      `json:"stock"`
	Entradas      int      `json:"entradas"`
	Salidas       int      `json:"salidas"`
	SampleBuckets []string `json:"sample_buckets,omitempty"`
	Synthesized   bool     `json:"synthesized"`
	Dropped       int      `json:"dropped"`
}

// NewSyncResponse arma la respuesta a partir del resultado de la carga.
func NewSyncResponse(out inventory.Outcome) SyncResponse {
	resp := SyncResponse{
		Status:      string(out.Status),
		Stock:       len(out.Snapshot.Stock),
		Entradas:    len(out.Snapshot.Entradas),
		Salidas:     len(out.Snapshot.Salidas),
		Synthesized: out.Snapshot.Synthesized,
		Dropped:     out.Snapshot.Dropped,
	}
	for _, b := range out.Snapshot.SampleBuckets {
		resp.SampleBuckets = append(resp.SampleBuckets, string(b))
	}
	if out.Err != nil {
		resp.Error = out.Err.Error()
	}
	return resp
}
