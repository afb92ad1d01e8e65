package forward

import (
	"context"

	"github.com/jhoicas/inventario-planilla/internal/domain/entity"
	"github.com/jhoicas/inventario-planilla/pkg/logger"
)

// LogForwarder deja constancia del movimiento en el log; es el destino por defecto
// cuando no hay webhook ni base de datos configurados.
type LogForwarder struct {
	log *logger.Logger
}

// NewLogForwarder construye el forwarder sobre log.
func NewLogForwarder(log *logger.Logger) *LogForwarder {
	return &LogForwarder{log: log}
}

// Forward registra el movimiento; nunca falla.
func (f *LogForwarder) Forward(_ context.Context, mv entity.Movement) error {
	f.log.Info().
		Str("kind", mv.Kind).
		Str("id", mv.ID).
		Str("code", mv.Code).
		Str("quantity", mv.Quantity.String()).
		Str("last_updated", mv.LastUpdated).
		Msg("movimiento reenviado")
	return nil
}
