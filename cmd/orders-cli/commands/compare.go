package commands

import (
	"fmt"
	"os"

	"orderhistory/internal/compare"
	"orderhistory/internal/order"
	"orderhistory/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	compareKind      *string
	compareThreshold *float64
)

func init() {
	compareKind = compareCmd.Flags().String("kind", "unknown", "The kind of order both pages hold.")
	compareThreshold = compareCmd.Flags().Float64("threshold", 0.75, "The title similarity needed to pair two line items.")
	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare [--kind <kind>] [--threshold <0..1>] <old.html> <new.html>",
	Short: "Extracts two revisions of the same order page and shows what changed.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		hint, err := order.ParseKind(*compareKind)
		if err != nil {
			serviceutil.Fatal("invalid --kind", err)
		}
		engine, err := newEngine(cfg, nil)
		if err != nil {
			serviceutil.Fatal("failed to create engine", err)
		}

		var results [2]order.Result
		for i, path := range args {
			markup, err := os.ReadFile(path)
			if err != nil {
				serviceutil.Fatal("failed to read page", err)
			}
			results[i] = engine.Extract(cmd.Context(), string(markup), hint)
			if !results[i].OK() {
				fmt.Fprintf(os.Stderr, "%s: no order (%s)\n", path, results[i].Reason)
			}
		}

		diffs, pairs := compare.Orders(results[0].Order, results[1].Order, *compareThreshold)

		t := newTable()
		t.SetTitle("line items")
		t.AppendHeader(table.Row{args[0], args[1], "Correlation"})
		for _, p := range pairs {
			t.AppendRow(table.Row{
				itemTitle(results[0].Order, p.Old),
				itemTitle(results[1].Order, p.New),
				fmt.Sprintf("%.2f", p.Correlation),
			})
		}
		t.Render()

		if len(diffs) == 0 {
			fmt.Println("both revisions extract to the same order")
			return
		}
		t = newTable()
		t.SetTitle("differences")
		t.AppendHeader(table.Row{"Row", "Field", args[0], args[1]})
		for _, d := range diffs {
			row := ""
			if d.Row >= 0 {
				row = fmt.Sprint(d.Row)
			}
			t.AppendRow(table.Row{row, d.Field, d.Old, d.New})
		}
		t.Render()
	},
}

func itemTitle(o *order.Order, row int) string {
	if o == nil || row < 0 || row >= len(o.Items) {
		return "-"
	}
	return o.Items[row].Title
}
