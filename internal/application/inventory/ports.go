package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-planilla/internal/domain/entity"
	"github.com/jhoicas/inventario-planilla/internal/domain/inventory"
)

// Fetcher lee la planilla remota y devuelve sus filas crudas.
// La implementación HTTP vive en infrastructure/sheet; en tests se inyecta un fake.
type Fetcher interface {
	Fetch(ctx context.Context) ([]inventory.Row, error)
}

// Forwarder reenvía un movimiento registrado a un destino externo (log, webhook, journal).
// Sus errores nunca llegan al llamador de RecordEntrada/RecordSalida.
type Forwarder interface {
	Forward(ctx context.Context, mv entity.Movement) error
}

// Clock devuelve la hora actual; se inyecta para controlar el TTL en tests.
type Clock func() time.Time
