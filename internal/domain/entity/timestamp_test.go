package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-planilla/internal/domain/entity"
)

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, time.March, 5, 9, 7, 0, 0, time.UTC)
	assert.Equal(t, "05/03/2025 09:07", entity.FormatTimestamp(ts))
}

func TestSortKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"formato completo", "25/03/2025 10:30", "2025-03-25 10:30"},
		{"texto libre se conserva", "ayer", "ayer"},
		{"vacío", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entity.SortKey(tt.in))
		})
	}
}

// El orden dd/MM/yyyy no es cronológico; SortKey sí lo es.
func TestSortByRecency_CruzaMesesYAnios(t *testing.T) {
	records := []entity.InventoryRecord{
		{Code: "a", LastUpdated: "31/01/2025 08:00"},
		{Code: "b", LastUpdated: "01/02/2025 08:00"},
		{Code: "c", LastUpdated: "15/12/2024 23:59"},
		{Code: "d", LastUpdated: "01/02/2025 09:30"},
	}

	entity.SortByRecency(records)

	var got []string
	for _, r := range records {
		got = append(got, r.Code)
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, got)
}

func TestSortMovementsByRecency(t *testing.T) {
	movements := []entity.Movement{
		{Kind: entity.KindEntrada, InventoryRecord: entity.InventoryRecord{Code: "1", LastUpdated: "20/03/2025 09:00"}},
		{Kind: entity.KindSalida, InventoryRecord: entity.InventoryRecord{Code: "2", LastUpdated: "22/03/2025 16:30"}},
	}

	entity.SortMovementsByRecency(movements)

	assert.Equal(t, entity.KindSalida, movements[0].Kind)
	assert.Equal(t, entity.KindEntrada, movements[1].Kind)
}
