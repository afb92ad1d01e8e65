package inventory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-planilla/internal/domain"
	"github.com/jhoicas/inventario-planilla/internal/domain/entity"
	"github.com/jhoicas/inventario-planilla/internal/domain/inventory"
)

// MovementInput datos de una entrada o salida a registrar.
type MovementInput struct {
	Code        string
	Description string
	Supplier    string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Note        string
	Operator    string // quién registra; solo para el log
}

// RecordEntrada agrega la entrada al historial y suma su cantidad al stock del código.
// Si el código no existe en el stock se crea a partir de la entrada. El reenvío al
// destino externo corre en segundo plano: sus errores se registran pero no se devuelven.
func (s *Service) RecordEntrada(ctx context.Context, in MovementInput) (entity.InventoryRecord, error) {
	rec, err := s.newMovementRecord(in)
	if err != nil {
		return entity.InventoryRecord{}, err
	}

	s.mu.Lock()
	s.entradas = append(s.entradas, rec)
	if i := indexByCode(s.stock, rec.Code); i >= 0 {
		item := &s.stock[i]
		item.Quantity = item.Quantity.Add(rec.Quantity)
		item.LastUpdated = rec.LastUpdated
		if item.Description == "" && rec.Description != "" {
			item.Description = rec.Description
		}
	} else {
		s.stock = append(s.stock, entity.InventoryRecord{
			Code:        rec.Code,
			Description: rec.Description,
			Supplier:    rec.Supplier,
			Quantity:    rec.Quantity,
			LastUpdated: rec.LastUpdated,
			Price:       rec.Price,
			Note:        rec.Note,
		})
	}
	s.mu.Unlock()

	s.metrics.IncMovement(entity.KindEntrada)
	s.log.Info().
		Str("id", rec.ID).
		Str("code", rec.Code).
		Str("quantity", rec.Quantity.String()).
		Str("operator", in.Operator).
		Msg("entrada registrada")
	s.forward(ctx, entity.Movement{Kind: entity.KindEntrada, InventoryRecord: rec})
	return rec, nil
}

// RecordSalida agrega la salida al historial y descuenta su cantidad del stock del código,
// sin bajar de cero. Un código que no está en el stock no lo modifica.
func (s *Service) RecordSalida(ctx context.Context, in MovementInput) (entity.InventoryRecord, error) {
	rec, err := s.newMovementRecord(in)
	if err != nil {
		return entity.InventoryRecord{}, err
	}

	s.mu.Lock()
	s.salidas = append(s.salidas, rec)
	if i := indexByCode(s.stock, rec.Code); i >= 0 {
		item := &s.stock[i]
		item.Quantity = inventory.ClampNonNegative(item.Quantity.Sub(rec.Quantity))
		item.LastUpdated = rec.LastUpdated
	}
	s.mu.Unlock()

	s.metrics.IncMovement(entity.KindSalida)
	s.log.Info().
		Str("id", rec.ID).
		Str("code", rec.Code).
		Str("quantity", rec.Quantity.String()).
		Str("operator", in.Operator).
		Msg("salida registrada")
	s.forward(ctx, entity.Movement{Kind: entity.KindSalida, InventoryRecord: rec})
	return rec, nil
}

// newMovementRecord valida el código y arma el registro con id y fecha actual.
func (s *Service) newMovementRecord(in MovementInput) (entity.InventoryRecord, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return entity.InventoryRecord{}, domain.ErrInvalidInput
	}
	return entity.InventoryRecord{
		ID:          s.newID(),
		Code:        code,
		Description: strings.TrimSpace(in.Description),
		Supplier:    strings.TrimSpace(in.Supplier),
		Quantity:    inventory.ClampNonNegative(in.Quantity),
		LastUpdated: entity.FormatTimestamp(s.now()),
		Price:       inventory.ClampNonNegative(in.Price),
		Note:        strings.TrimSpace(in.Note),
	}, nil
}

// forward reenvía el movimiento sin bloquear la respuesta. El contexto se desacopla
// del request (que termina antes) y queda limitado por forwardTimeout.
func (s *Service) forward(ctx context.Context, mv entity.Movement) {
	if s.forwarder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.forwardTimeout)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer cancel()
		if err := s.forwarder.Forward(ctx, mv); err != nil {
			s.metrics.IncForwardFailure(mv.Kind)
			s.log.Error().Err(err).Str("kind", mv.Kind).Str("id", mv.ID).Msg("no se pudo reenviar el movimiento")
		}
	}()
}

// Wait espera a que terminen los reenvíos en curso. Se llama al apagar el servidor.
func (s *Service) Wait() {
	s.pending.Wait()
}
