package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-planilla/internal/domain/entity"
)

// Datos de ejemplo que reemplazan a la planilla cuando no se puede leer.
// Se exponen solo como copias para que nadie mute el conjunto base.
var (
	sampleStock = []entity.InventoryRecord{
		sample("001", "Laptop Dell XPS 13", "Dell Computers", 15, "25/03/2025 10:30", "1299.99", "Modelo 2025 con Intel i7"),
		sample("002", `Monitor Samsung 27"`, "Samsung Electronics", 28, "24/03/2025 14:45", "349.99", "Resolución 4K, HDMI, DisplayPort"),
		sample("003", "Teclado Logitech MX Keys", "Logitech", 42, "23/03/2025 09:15", "119.99", "Retroiluminado, conexión USB-C"),
		sample("004", "Ratón Logitech MX Master 3", "Logitech", 37, "22/03/2025 16:20", "99.99", "Inalámbrico, Bluetooth"),
		sample("005", "Disco SSD Samsung 1TB", "Samsung Electronics", 50, "21/03/2025 11:10", "149.99", "NVMe, PCIe 4.0"),
	}

	sampleEntradas = []entity.InventoryRecord{
		sample("001", "Laptop Dell XPS 13", "Dell Computers", 10, "20/03/2025 09:00", "1299.99", "Primera compra"),
		sample("002", `Monitor Samsung 27"`, "Samsung Electronics", 20, "20/03/2025 09:15", "349.99", "Modelos nuevos"),
		sample("001", "Laptop Dell XPS 13", "Dell Computers", 5, "22/03/2025 14:30", "1299.99", "Reposición de stock"),
	}

	sampleSalidas = []entity.InventoryRecord{
		sample("002", `Monitor Samsung 27"`, "Samsung Electronics", 2, "21/03/2025 10:45", "349.99", "Venta a cliente corporativo"),
		sample("003", "Teclado Logitech MX Keys", "Logitech", 3, "22/03/2025 16:30", "119.99", "Venta a oficina central"),
	}
)

func sample(code, description, supplier string, qty int64, ts, price, note string) entity.InventoryRecord {
	return entity.InventoryRecord{
		Code:        code,
		Description: description,
		Supplier:    supplier,
		Quantity:    decimal.NewFromInt(qty),
		LastUpdated: ts,
		Price:       decimal.RequireFromString(price),
		Note:        note,
	}
}

// SampleStock devuelve una copia del stock de ejemplo.
func SampleStock() []entity.InventoryRecord { return CloneRecords(sampleStock) }

// SampleEntradas devuelve una copia de las entradas de ejemplo.
func SampleEntradas() []entity.InventoryRecord { return CloneRecords(sampleEntradas) }

// SampleSalidas devuelve una copia de las salidas de ejemplo.
func SampleSalidas() []entity.InventoryRecord { return CloneRecords(sampleSalidas) }

// SampleSnapshot devuelve los tres conjuntos de ejemplo.
func SampleSnapshot() Snapshot {
	return Snapshot{
		Stock:         SampleStock(),
		Entradas:      SampleEntradas(),
		Salidas:       SampleSalidas(),
		SampleBuckets: []Bucket{BucketStock, BucketEntradas, BucketSalidas},
	}
}

// CloneRecords copia el slice; los campos de InventoryRecord son valores, así que
// la copia superficial aísla al llamador.
func CloneRecords(in []entity.InventoryRecord) []entity.InventoryRecord {
	if in == nil {
		return nil
	}
	out := make([]entity.InventoryRecord, len(in))
	copy(out, in)
	return out
}
