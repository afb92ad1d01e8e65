package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/inventario-planilla/internal/domain/entity"
)

// DefaultRecentLimit es la cantidad de movimientos recientes que se muestran por defecto.
const DefaultRecentLimit = 10

// Summary resume el stock actual.
type Summary struct {
	TotalProducts  int             `json:"total_products"`
	InventoryValue decimal.Decimal `json:"inventory_value"` // Σ precio × cantidad
	LowStockCount  int             `json:"low_stock_count"`
	LowStockBelow  decimal.Decimal `json:"low_stock_below"`
}

// Filter devuelve los registros cuyo código, descripción o proveedor contienen query,
// sin distinguir mayúsculas. Una query vacía devuelve todos.
func Filter(records []entity.InventoryRecord, query string) []entity.InventoryRecord {
	query = strings.TrimSpace(query)
	if query == "" {
		return records
	}
	folder := cases.Fold()
	needle := folder.String(query)
	out := make([]entity.InventoryRecord, 0, len(records))
	for _, rec := range records {
		if strings.Contains(folder.String(rec.Code), needle) ||
			strings.Contains(folder.String(rec.Description), needle) ||
			strings.Contains(folder.String(rec.Supplier), needle) {
			out = append(out, rec)
		}
	}
	return out
}

// Summarize calcula el total de productos, el valor del inventario y cuántos
// productos tienen una cantidad menor a lowStockBelow.
func Summarize(stock []entity.InventoryRecord, lowStockBelow decimal.Decimal) Summary {
	s := Summary{
		TotalProducts:  len(stock),
		InventoryValue: decimal.Zero,
		LowStockBelow:  lowStockBelow,
	}
	for _, rec := range stock {
		s.InventoryValue = s.InventoryValue.Add(rec.Price.Mul(rec.Quantity))
		if rec.Quantity.LessThan(lowStockBelow) {
			s.LowStockCount++
		}
	}
	return s
}

// MergeMovements une entradas y salidas etiquetadas, de la más reciente a la más antigua,
// y devuelve como máximo limit (limit <= 0 usa DefaultRecentLimit).
func MergeMovements(entradas, salidas []entity.InventoryRecord, limit int) []entity.Movement {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	all := make([]entity.Movement, 0, len(entradas)+len(salidas))
	for _, rec := range entradas {
		all = append(all, entity.Movement{Kind: entity.KindEntrada, InventoryRecord: rec})
	}
	for _, rec := range salidas {
		all = append(all, entity.Movement{Kind: entity.KindSalida, InventoryRecord: rec})
	}
	entity.SortMovementsByRecency(all)
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}
