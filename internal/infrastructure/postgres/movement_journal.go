package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/inventario-planilla/internal/domain/entity"
)

// Querier es la parte de pgxpool.Pool / pgx.Tx que usa el journal.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const createJournalTable = `
CREATE TABLE IF NOT EXISTS sheet_movements (
	id           UUID PRIMARY KEY,
	kind         TEXT NOT NULL,
	code         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	supplier     TEXT NOT NULL DEFAULT '',
	quantity     NUMERIC(18,4) NOT NULL,
	price        NUMERIC(18,4) NOT NULL,
	note         TEXT NOT NULL DEFAULT '',
	last_updated TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_sheet_movements_code ON sheet_movements (code, created_at DESC);`

// MovementJournal guarda cada entrada y salida registrada en una tabla de solo inserción.
// La planilla sigue siendo la fuente de verdad; el journal conserva lo que se registró
// localmente y un refresco pisaría.
type MovementJournal struct {
	q Querier
}

// NewMovementJournal construye el journal. Pasar pool o tx (Querier).
func NewMovementJournal(q Querier) *MovementJournal {
	return &MovementJournal{q: q}
}

// EnsureSchema crea la tabla si no existe.
func (j *MovementJournal) EnsureSchema(ctx context.Context) error {
	if _, err := j.q.Exec(ctx, createJournalTable); err != nil {
		return fmt.Errorf("crear tabla sheet_movements: %w", err)
	}
	return nil
}

// Forward inserta el movimiento; un id repetido se ignora.
func (j *MovementJournal) Forward(ctx context.Context, mv entity.Movement) error {
	query := `
		INSERT INTO sheet_movements (id, kind, code, description, supplier, quantity, price, note, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING`
	_, err := j.q.Exec(ctx, query,
		mv.ID, mv.Kind, mv.Code, mv.Description, mv.Supplier,
		mv.Quantity, mv.Price, mv.Note, mv.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("insertar movimiento %s: %w", mv.ID, err)
	}
	return nil
}

// ListByCode devuelve los movimientos registrados para un código, del más nuevo al más viejo.
func (j *MovementJournal) ListByCode(ctx context.Context, code string, limit int) ([]entity.Movement, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id::text, kind, code, description, supplier, quantity, price, note, last_updated
		FROM sheet_movements WHERE code = $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := j.q.Query(ctx, query, code, limit)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	defer rows.Close()

	var list []entity.Movement
	for rows.Next() {
		var mv entity.Movement
		if err := rows.Scan(&mv.ID, &mv.Kind, &mv.Code, &mv.Description, &mv.Supplier,
			&mv.Quantity, &mv.Price, &mv.Note, &mv.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, mv)
	}
	return list, rows.Err()
}
