package sheet_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-planilla/internal/domain/inventory"
	"github.com/jhoicas/inventario-planilla/internal/infrastructure/sheet"
)

var fixedNow = time.Date(2025, time.March, 26, 12, 0, 0, 0, time.UTC)

func TestParseCSV_UnaFilaPorLinea(t *testing.T) {
	for _, n := range []int{0, 1, 7} {
		t.Run(fmt.Sprintf("%d filas", n), func(t *testing.T) {
			var sb strings.Builder
			sb.WriteString("Código,Descrição,Quantidade\n")
			for i := 0; i < n; i++ {
				fmt.Fprintf(&sb, "%03d,Producto %d,%d\n", i, i, i)
				if i%2 == 0 {
					sb.WriteString("\n")
				}
			}

			rows := sheet.ParseCSVString(sb.String())

			assert.Len(t, rows, n)
		})
	}
}

func TestParseCSV_CamposEntreComillas(t *testing.T) {
	rows := sheet.ParseCSVString("Código,Descrição,Preço\n002,\"Monitor 27\"\", HDMI\",\"349,99\"\n")

	require.Len(t, rows, 1)
	assert.Equal(t, `Monitor 27", HDMI`, rows[0]["Descrição"])
	assert.Equal(t, "349,99", rows[0]["Preço"])
}

func TestParseCSV_FilasCortasYLargas(t *testing.T) {
	rows := sheet.ParseCSVString("A,B,C\n1\n1,2,3,4\n")

	require.Len(t, rows, 2)
	assert.Equal(t, inventory.Row{"A": "1", "B": "", "C": ""}, rows[0])
	assert.Equal(t, inventory.Row{"A": "1", "B": "2", "C": "3"}, rows[1])
}

func TestParseCSV_LineaSoloSeparadoresEsUnaFila(t *testing.T) {
	rows := sheet.ParseCSVString("A,B,C\n1,2,3\n,,\n\n4,5,6\n")

	require.Len(t, rows, 3)
	assert.Equal(t, inventory.Row{"A": "", "B": "", "C": ""}, rows[1])
	assert.Equal(t, "4", rows[2]["A"])
}

func TestParseCSV_EncabezadosConBOMYEspacios(t *testing.T) {
	rows := sheet.ParseCSVString("\ufeff Código , \"Nota\"\n001,x\n")

	require.Len(t, rows, 1)
	assert.Equal(t, "001", rows[0]["Código"])
	assert.Equal(t, "x", rows[0]["Nota"])
}

func TestParseCSV_Vacio(t *testing.T) {
	assert.Empty(t, sheet.ParseCSVString(""))
	assert.Empty(t, sheet.ParseCSVString("Código,Nota\n"))
}

func TestParseCSV_CorteTemprano(t *testing.T) {
	seq := sheet.ParseCSV(strings.NewReader("A\n1\n2\n3\n"))

	count := 0
	for range seq {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

// Normalizar la salida del parser con encabezados canónicos reproduce los valores originales.
func TestParseCSV_NormalizarIdaYVuelta(t *testing.T) {
	csv := "Código,Descrição,Fornecedor,Quantidade,Ultima Atualização,Preço,Nota\n" +
		"001,Laptop Dell XPS 13,Dell Computers,15,25/03/2025 10:30,1299.99,Modelo 2025\n"

	rows := sheet.ParseCSVString(csv)
	require.Len(t, rows, 1)

	rec := inventory.Normalize(rows[0], fixedNow)
	assert.Equal(t, "001", rec.Code)
	assert.Equal(t, "Laptop Dell XPS 13", rec.Description)
	assert.Equal(t, "Dell Computers", rec.Supplier)
	assert.True(t, rec.Quantity.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, "25/03/2025 10:30", rec.LastUpdated)
	assert.True(t, rec.Price.Equal(decimal.RequireFromString("1299.99")))
	assert.Equal(t, "Modelo 2025", rec.Note)
}
