package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"orderhistory/internal/money"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(value)
}

func formatMoney(m *money.Money) string {
	if m == nil {
		return "-"
	}
	return m.String()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.DateOnly)
}

func formatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}
