package entity

import (
	"github.com/shopspring/decimal"
)

// Tipos de registro de inventario.
const (
	KindStock   = "STOCK"
	KindEntrada = "ENTRADA" // entrada (reposición)
	KindSalida  = "SALIDA"  // salida (retiro)
)

// InventoryRecord es la forma canónica de una fila de la planilla.
// La misma forma se usa para stock, entradas y salidas; Code es la clave que une
// el stock con sus movimientos.
type InventoryRecord struct {
	ID          string          `json:"id,omitempty"` // solo movimientos registrados localmente
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Supplier    string          `json:"supplier"`
	Quantity    decimal.Decimal `json:"quantity"`     // nunca negativo
	LastUpdated string          `json:"last_updated"` // dd/MM/yyyy HH:mm
	Price       decimal.Decimal `json:"price"`        // nunca negativo
	Note        string          `json:"note"`
}

// Movement es un registro de entrada o salida etiquetado con su tipo.
type Movement struct {
	Kind string `json:"kind"`
	InventoryRecord
}
