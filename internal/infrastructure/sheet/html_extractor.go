package sheet

import (
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"

	"github.com/jhoicas/inventario-planilla/internal/domain/inventory"
)

// hintSynonyms amplía la pista de tabla con un texto que suele aparecer en ella.
var hintSynonyms = map[string][]string{
	"stock":    {"Código"},
	"entradas": {"Entrada"},
	"saídas":   {"Salida"},
	"salidas":  {"Salida"},
}

// ExtractTable busca la tabla de datos más probable del documento y la convierte en filas.
// Prefiere la primera tabla cuyo texto contiene hint (o uno de sus sinónimos); si ninguna
// coincide usa la primera tabla. Sin tablas devuelve un slice vacío.
func ExtractTable(r io.Reader, hint string) []inventory.Row {
	doc, err := html.Parse(r)
	if err != nil {
		log.Warn().Err(err).Msg("html: documento ilegible")
		return []inventory.Row{}
	}

	tables := findAll(doc, atom.Table)
	if len(tables) == 0 {
		return []inventory.Row{}
	}
	return tableRows(chooseTable(tables, hint))
}

func chooseTable(tables []*html.Node, hint string) *html.Node {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return tables[0]
	}
	folder := cases.Fold()
	needles := []string{folder.String(hint)}
	for _, syn := range hintSynonyms[folder.String(hint)] {
		needles = append(needles, folder.String(syn))
	}
	for _, t := range tables {
		text := folder.String(textContent(t))
		for _, n := range needles {
			if strings.Contains(text, n) {
				return t
			}
		}
	}
	return tables[0]
}

func tableRows(table *html.Node) []inventory.Row {
	rows := []inventory.Row{}
	var header []string
	for _, tr := range ownRows(table) {
		cells, hasTD := rowCells(tr)
		if header == nil {
			header = cells
			continue
		}
		if !hasTD {
			continue
		}
		row := make(inventory.Row, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// ownRows devuelve las filas de la tabla sin entrar en tablas anidadas.
func ownRows(table *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Table:
			case atom.Tr:
				out = append(out, c)
			default:
				walk(c)
			}
		}
	}
	walk(table)
	return out
}

// rowCells devuelve el texto de cada celda th/td de la fila e indica si hay algún td.
func rowCells(tr *html.Node) ([]string, bool) {
	var cells []string
	hasTD := false
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Td:
			hasTD = true
			cells = append(cells, strings.TrimSpace(textContent(c)))
		case atom.Th:
			cells = append(cells, strings.TrimSpace(textContent(c)))
		}
	}
	return cells, hasTD
}

func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == a {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
