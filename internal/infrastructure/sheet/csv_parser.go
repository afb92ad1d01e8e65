package sheet

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"iter"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/inventario-planilla/internal/domain/inventory"
)

const utf8BOM = "\ufeff"

// skipBOM descarta la marca de orden de bytes UTF-8 que agregan algunas exportaciones.
func skipBOM(br *bufio.Reader) {
	if b, err := br.Peek(len(utf8BOM)); err == nil && string(b) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}
}

// cleanHeader recorta espacios y comillas sobrantes de un encabezado.
func cleanHeader(h string) string {
	h = strings.TrimSpace(h)
	h = strings.Trim(h, `"`)
	return strings.TrimSpace(h)
}

// ParseCSV recorre el texto CSV y produce una fila por línea de datos, usando la
// primera línea como encabezados. Solo se saltan las líneas vacías; una línea con
// celdas vacías (",,,") es una fila con valores "". Nunca falla: las líneas que no se pueden leer se
// omiten con un aviso. Las filas más cortas que el encabezado completan con "".
func ParseCSV(r io.Reader) iter.Seq[inventory.Row] {
	return func(yield func(inventory.Row) bool) {
		br := bufio.NewReader(r)
		skipBOM(br)

		cr := csv.NewReader(br)
		cr.LazyQuotes = true
		cr.FieldsPerRecord = -1

		header, err := cr.Read()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Warn().Err(err).Msg("csv: no se pudo leer el encabezado")
			}
			return
		}
		for i := range header {
			header[i] = cleanHeader(header[i])
		}

		for {
			record, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				var perr *csv.ParseError
				if errors.As(err, &perr) {
					log.Warn().Err(err).Int("line", perr.Line).Msg("csv: fila omitida")
					continue
				}
				log.Warn().Err(err).Msg("csv: lectura interrumpida")
				return
			}
			row := make(inventory.Row, len(header))
			for i, h := range header {
				if h == "" {
					continue
				}
				if i < len(record) {
					row[h] = record[i]
				} else {
					row[h] = ""
				}
			}
			if !yield(row) {
				return
			}
		}
	}
}

// ParseCSVString es ParseCSV sobre un string, materializado en un slice.
func ParseCSVString(s string) []inventory.Row {
	rows := []inventory.Row{}
	for row := range ParseCSV(strings.NewReader(s)) {
		rows = append(rows, row)
	}
	return rows
}
