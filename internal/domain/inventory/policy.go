package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-planilla/internal/domain"
)

// OutcomeStatus es el resultado etiquetado de una carga desde la planilla.
type OutcomeStatus string

const (
	// StatusLoaded: la planilla se leyó y clasificó (algunas colecciones pueden venir de ejemplo).
	StatusLoaded OutcomeStatus = "loaded"
	// StatusFallback: la lectura falló o vino vacía; la caché usa los datos de ejemplo.
	StatusFallback OutcomeStatus = "fallback"
	// StatusFailed: el llamador canceló; la caché no debe tocarse.
	StatusFailed OutcomeStatus = "failed"
)

// Outcome resume una carga: el estado, el contenido a aplicar y la causa del fallback o fallo.
type Outcome struct {
	Status   OutcomeStatus
	Snapshot Snapshot
	Err      error
}

// Resolve decide qué contenido debe quedar en la caché a partir del resultado de la lectura.
// Un error transitorio de la planilla nunca deja la caché vacía: se sustituye por los datos
// de ejemplo. Solo la cancelación del propio llamador (ctx) produce StatusFailed.
func Resolve(ctx context.Context, rows []Row, fetchErr error, now time.Time) Outcome {
	switch {
	case ctx.Err() != nil:
		return Outcome{Status: StatusFailed, Err: ctx.Err()}
	case fetchErr != nil:
		return Outcome{Status: StatusFallback, Snapshot: SampleSnapshot(), Err: fetchErr}
	case len(rows) == 0:
		return Outcome{
			Status:   StatusFallback,
			Snapshot: SampleSnapshot(),
			Err:      fmt.Errorf("%w: 0 filas", domain.ErrEmptyPayload),
		}
	}
	return Outcome{Status: StatusLoaded, Snapshot: Classify(rows, now)}
}
