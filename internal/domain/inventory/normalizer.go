package inventory

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/inventario-planilla/internal/domain/entity"
)

// Row es una fila cruda de la planilla: nombre de columna -> texto de la celda.
type Row map[string]string

// Nombres canónicos de columna (encabezados de la planilla original).
const (
	ColCode        = "Código"
	ColDescription = "Descrição"
	ColSupplier    = "Fornecedor"
	ColQuantity    = "Quantidade"
	ColLastUpdated = "Ultima Atualização"
	ColPrice       = "Preço"
	ColNote        = "Nota"
	ColType        = "Tipo"
)

// fieldRule asocia un campo canónico con sus sinónimos, en orden de precedencia.
type fieldRule struct {
	keys   []string
	assign func(rec *entity.InventoryRecord, value string)
}

var fieldRules = []fieldRule{
	{
		keys:   []string{ColCode, "Codigo", "Code"},
		assign: func(rec *entity.InventoryRecord, v string) { rec.Code = v },
	},
	{
		keys:   []string{ColDescription, "Descripcion", "Descripción", "Description"},
		assign: func(rec *entity.InventoryRecord, v string) { rec.Description = v },
	},
	{
		keys:   []string{ColSupplier, "Proveedor", "Supplier"},
		assign: func(rec *entity.InventoryRecord, v string) { rec.Supplier = v },
	},
	{
		keys:   []string{ColQuantity, "Cantidad", "Quantity"},
		assign: func(rec *entity.InventoryRecord, v string) { rec.Quantity = ParseQuantity(v) },
	},
	{
		keys:   []string{ColLastUpdated, "Ultima Actualización", "Ultima Actualizacion", "Last Updated"},
		assign: func(rec *entity.InventoryRecord, v string) { rec.LastUpdated = v },
	},
	{
		keys:   []string{ColPrice, "Precio", "Price"},
		assign: func(rec *entity.InventoryRecord, v string) { rec.Price = ParsePrice(v) },
	},
	{
		keys:   []string{ColNote, "Note"},
		assign: func(rec *entity.InventoryRecord, v string) { rec.Note = v },
	},
}

// NormalizeKey aplica NFC y recorta espacios a un nombre de columna, de modo que
// "Código" en NFD (exportaciones de macOS) coincide con el canónico.
func NormalizeKey(key string) string {
	return norm.NFC.String(strings.TrimSpace(key))
}

// NormalizeRow devuelve una copia de row con las claves normalizadas.
// Si dos claves colapsan en la misma, gana la primera con valor no vacío.
func NormalizeRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		nk := NormalizeKey(k)
		if prev, ok := out[nk]; ok && prev != "" {
			continue
		}
		out[nk] = v
	}
	return out
}

// lookup devuelve el primer valor no vacío entre las claves dadas.
func lookup(row Row, keys []string) (string, bool) {
	for _, k := range keys {
		if v := strings.TrimSpace(row[k]); v != "" {
			return v, true
		}
	}
	return "", false
}

// Normalize mapea una fila con encabezados en portugués o español a la forma canónica.
// Nunca falla: los campos que no se resuelven toman su valor por defecto (texto vacío,
// cero para cantidad y precio, now formateado para LastUpdated).
func Normalize(row Row, now time.Time) entity.InventoryRecord {
	row = NormalizeRow(row)
	rec := entity.InventoryRecord{
		Quantity:    ParseQuantity(nil),
		Price:       ParsePrice(nil),
		LastUpdated: entity.FormatTimestamp(now),
	}
	for _, rule := range fieldRules {
		if v, ok := lookup(row, rule.keys); ok {
			rule.assign(&rec, v)
		}
	}
	return rec
}

// NormalizeAll aplica Normalize a cada fila.
func NormalizeAll(rows []Row, now time.Time) []entity.InventoryRecord {
	out := make([]entity.InventoryRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, Normalize(row, now))
	}
	return out
}
