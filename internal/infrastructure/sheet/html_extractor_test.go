package sheet_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-planilla/internal/domain/inventory"
	"github.com/jhoicas/inventario-planilla/internal/infrastructure/sheet"
)

const publishedHTML = `<html><body>
<table id="resumen"><tr><th>Total</th></tr><tr><td>3</td></tr></table>
<table id="stock">
  <thead><tr><th>Código</th><th>Descrição</th><th>Quantidade</th></tr></thead>
  <tbody>
    <tr><td>001</td><td>Laptop <b>Dell</b></td><td>15</td><td>sobra</td></tr>
    <tr><th>solo encabezado</th></tr>
    <tr><td>002</td></tr>
  </tbody>
</table>
</body></html>`

func TestExtractTable_EligeTablaPorSinonimo(t *testing.T) {
	rows := sheet.ExtractTable(strings.NewReader(publishedHTML), "Stock")

	require.Len(t, rows, 2)
	assert.Equal(t, inventory.Row{"Código": "001", "Descrição": "Laptop Dell", "Quantidade": "15"}, rows[0])
	assert.Equal(t, inventory.Row{"Código": "002", "Descrição": "", "Quantidade": ""}, rows[1])
}

func TestExtractTable_SinCoincidenciaUsaPrimera(t *testing.T) {
	rows := sheet.ExtractTable(strings.NewReader(publishedHTML), "Entradas")

	require.Len(t, rows, 1)
	assert.Equal(t, "3", rows[0]["Total"])
}

func TestExtractTable_PistaDirecta(t *testing.T) {
	doc := `<table><tr><td>X</td></tr><tr><td>1</td></tr></table>
<table><tr><td>Tipo</td><td>Código</td></tr><tr><td>Salida</td><td>9</td></tr></table>`

	rows := sheet.ExtractTable(strings.NewReader(doc), "Saídas")

	require.Len(t, rows, 1)
	assert.Equal(t, "Salida", rows[0]["Tipo"])
	assert.Equal(t, "9", rows[0]["Código"])
}

func TestExtractTable_SinTablas(t *testing.T) {
	rows := sheet.ExtractTable(strings.NewReader("<p>sin datos</p>"), "Stock")

	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
