package inventory

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-planilla/internal/domain/entity"
)

// Bucket identifica una de las tres colecciones del inventario.
type Bucket string

const (
	BucketStock    Bucket = "stock"
	BucketEntradas Bucket = "entradas"
	BucketSalidas  Bucket = "salidas"
)

// Parámetros de las entradas/salidas sintetizadas cuando la planilla no trae historial.
const (
	synthEntradas     = 3
	synthSalidasEnd   = 5
	synthEntradaDays  = -2
	synthSalidaDays   = -1
	synthSalidaMaxQty = 2
)

var typeKeys = []string{ColType, "Type"}

// Snapshot es el contenido completo de la caché tras una carga.
type Snapshot struct {
	Stock    []entity.InventoryRecord
	Entradas []entity.InventoryRecord
	Salidas  []entity.InventoryRecord

	// SampleBuckets lista las colecciones que se rellenaron con datos de ejemplo.
	SampleBuckets []Bucket
	// Synthesized indica que entradas/salidas se derivaron del stock.
	Synthesized bool
	// Dropped cuenta filas con un Tipo desconocido.
	Dropped int
}

// UsesSamples indica si bucket se rellenó con datos de ejemplo.
func (s Snapshot) UsesSamples(bucket Bucket) bool {
	for _, b := range s.SampleBuckets {
		if b == bucket {
			return true
		}
	}
	return false
}

// classifyType devuelve el bucket de una fila según su columna Tipo.
// ok es false para un Tipo con un valor desconocido.
func classifyType(value string) (Bucket, bool) {
	switch strings.ToLower(NormalizeKey(value)) {
	case "", "stock":
		return BucketStock, true
	case "entrada", "entradas":
		return BucketEntradas, true
	case "salida", "salidas", "saída", "saídas", "saida", "saidas":
		return BucketSalidas, true
	}
	return "", false
}

// Classify reparte las filas en stock, entradas y salidas mirando la columna Tipo.
// Las filas sin Tipo van al stock.
//
// Si las tres colecciones quedan vacías (todas las filas traen un Tipo desconocido),
// todas las filas se toman como stock y se sintetizan entradas (primeras 3 filas,
// hace 2 días) y salidas (filas 3 a 5, cantidad máx. 2, hace 1 día). Después,
// cualquier colección vacía se reemplaza por su propio conjunto de ejemplo.
func Classify(rows []Row, now time.Time) Snapshot {
	var snap Snapshot
	for _, raw := range rows {
		row := NormalizeRow(raw)
		tipo, _ := lookup(row, typeKeys)
		bucket, ok := classifyType(tipo)
		if !ok {
			snap.Dropped++
			continue
		}
		rec := Normalize(row, now)
		switch bucket {
		case BucketStock:
			snap.Stock = append(snap.Stock, rec)
		case BucketEntradas:
			snap.Entradas = append(snap.Entradas, rec)
		case BucketSalidas:
			snap.Salidas = append(snap.Salidas, rec)
		}
	}

	// Ninguna fila se pudo clasificar: no se descarta nada.
	if len(rows) > 0 && len(snap.Stock) == 0 && len(snap.Entradas) == 0 && len(snap.Salidas) == 0 {
		snap.Stock = NormalizeAll(rows, now)
		snap.Entradas, snap.Salidas = synthesizeMovements(snap.Stock, now)
		snap.Synthesized = true
		snap.Dropped = 0
	}

	fillEmptyBuckets(&snap)
	return snap
}

// synthesizeMovements deriva un historial de muestra a partir del stock.
func synthesizeMovements(stock []entity.InventoryRecord, now time.Time) (entradas, salidas []entity.InventoryRecord) {
	n := len(stock)
	entradaTS := entity.FormatTimestamp(now.AddDate(0, 0, synthEntradaDays))
	for _, rec := range stock[:min(synthEntradas, n)] {
		rec.LastUpdated = entradaTS
		entradas = append(entradas, rec)
	}

	salidaTS := entity.FormatTimestamp(now.AddDate(0, 0, synthSalidaDays))
	maxQty := decimal.NewFromInt(synthSalidaMaxQty)
	for _, rec := range stock[min(synthEntradas, n):min(synthSalidasEnd, n)] {
		rec.Quantity = decimal.Min(maxQty, rec.Quantity)
		rec.LastUpdated = salidaTS
		salidas = append(salidas, rec)
	}
	return entradas, salidas
}

func fillEmptyBuckets(snap *Snapshot) {
	if len(snap.Stock) == 0 {
		snap.Stock = SampleStock()
		snap.SampleBuckets = append(snap.SampleBuckets, BucketStock)
	}
	if len(snap.Entradas) == 0 {
		snap.Entradas = SampleEntradas()
		snap.SampleBuckets = append(snap.SampleBuckets, BucketEntradas)
	}
	if len(snap.Salidas) == 0 {
		snap.Salidas = SampleSalidas()
		snap.SampleBuckets = append(snap.SampleBuckets, BucketSalidas)
	}
}
