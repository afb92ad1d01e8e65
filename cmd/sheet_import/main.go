// sheet_import lee una exportación local de la planilla (CSV o HTML), la clasifica
// igual que el servicio y escribe el resultado como JSON.
//
// Uso: go run ./cmd/sheet_import [-latin1] [-table Stock] [-out snapshot.json] ruta/planilla.csv
// Sirve para revisar una planilla antes de publicarla o para generar datos de prueba.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventario-planilla/internal/domain/entity"
	"github.com/jhoicas/inventario-planilla/internal/domain/inventory"
	"github.com/jhoicas/inventario-planilla/internal/infrastructure/sheet"
)

type snapshotFile struct {
	GeneratedAt   string                   `json:"generated_at"`
	Source        string                   `json:"source"`
	Rows          int                      `json:"rows"`
	Synthesized   bool                     `json:"synthesized"`
	Dropped       int                      `json:"dropped"`
	SampleBuckets []inventory.Bucket       `json:"sample_buckets,omitempty"`
	Stock         []entity.InventoryRecord `json:"stock"`
	Entradas      []entity.InventoryRecord `json:"entradas"`
	Salidas       []entity.InventoryRecord `json:"salidas"`
}

func main() {
	latin1 := flag.Bool("latin1", false, "el archivo está en ISO-8859-1 (exportaciones de Excel antiguas)")
	table := flag.String("table", "Stock", "tabla preferida si el archivo es HTML")
	outPath := flag.String("out", "", "archivo de salida (por defecto stdout)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Uso: sheet_import [-latin1] [-table Stock] [-out archivo.json] ruta/planilla.csv|html")
		os.Exit(2)
	}
	path := flag.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir planilla: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var r io.Reader = f
	if *latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	rows := readRows(r, path, *table)
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "La planilla no tiene filas de datos")
		os.Exit(1)
	}

	now := time.Now()
	snap := inventory.Classify(rows, now)
	doc := snapshotFile{
		GeneratedAt:   entity.FormatTimestamp(now),
		Source:        filepath.Base(path),
		Rows:          len(rows),
		Synthesized:   snap.Synthesized,
		Dropped:       snap.Dropped,
		SampleBuckets: snap.SampleBuckets,
		Stock:         snap.Stock,
		Entradas:      snap.Entradas,
		Salidas:       snap.Salidas,
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Procesadas %d filas: %d stock, %d entradas, %d salidas (%d descartadas)\n",
		len(rows), len(snap.Stock), len(snap.Entradas), len(snap.Salidas), snap.Dropped)
}

// readRows decide el formato por la extensión del archivo.
func readRows(r io.Reader, path, table string) []inventory.Row {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".html" || ext == ".htm" {
		return sheet.ExtractTable(r, table)
	}
	return slices.Collect(sheet.ParseCSV(r))
}
