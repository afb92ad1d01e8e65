package forward

import (
	"context"

	"go.uber.org/multierr"

	"github.com/jhoicas/inventario-planilla/internal/domain/entity"
)

// Sink es cualquier destino de movimientos.
type Sink interface {
	Forward(ctx context.Context, mv entity.Movement) error
}

// MultiForwarder reenvía a todos los destinos aunque alguno falle y combina los errores.
type MultiForwarder struct {
	sinks []Sink
}

// NewMultiForwarder ignora los destinos nil.
func NewMultiForwarder(sinks ...Sink) *MultiForwarder {
	m := &MultiForwarder{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Forward envía mv a cada destino en orden.
func (m *MultiForwarder) Forward(ctx context.Context, mv entity.Movement) error {
	var err error
	for _, s := range m.sinks {
		err = multierr.Append(err, s.Forward(ctx, mv))
	}
	return err
}

// Len devuelve la cantidad de destinos.
func (m *MultiForwarder) Len() int { return len(m.sinks) }
