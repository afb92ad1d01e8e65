package entity

import (
	"regexp"
	"sort"
	"time"
)

// TimestampLayout es el formato textual de LastUpdated (dd/MM/yyyy HH:mm).
const TimestampLayout = "02/01/2006 15:04"

var timestampPattern = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4}) (\d{2}):(\d{2})`)

// FormatTimestamp formatea t con TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// SortKey reordena un timestamp dd/MM/yyyy HH:mm a yyyy-MM-dd HH:mm para que el orden
// lexicográfico coincida con el cronológico. Un texto que no sigue el formato se devuelve igual.
func SortKey(ts string) string {
	m := timestampPattern.FindStringSubmatch(ts)
	if m == nil {
		return ts
	}
	return m[3] + "-" + m[2] + "-" + m[1] + " " + m[4] + ":" + m[5]
}

// SortByRecency ordena registros del más reciente al más antiguo (orden estable).
func SortByRecency(records []InventoryRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return SortKey(records[i].LastUpdated) > SortKey(records[j].LastUpdated)
	})
}

// SortMovementsByRecency ordena movimientos del más reciente al más antiguo (orden estable).
func SortMovementsByRecency(movements []Movement) {
	sort.SliceStable(movements, func(i, j int) bool {
		return SortKey(movements[i].LastUpdated) > SortKey(movements[j].LastUpdated)
	})
}
