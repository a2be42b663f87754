package commands

import (
	"os"

	"orderhistory/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var headersJSON *bool

func init() {
	headersJSON = headersCmd.Flags().Bool("json", false, "Print headers as JSON instead of a table.")
	rootCmd.AddCommand(headersCmd)
}

var headersCmd = &cobra.Command{
	Use:   "headers [--json] <order-history.html>",
	Short: "Lists the orders on a saved order history page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		engine, err := newEngine(cfg, nil)
		if err != nil {
			serviceutil.Fatal("failed to create engine", err)
		}

		markup, err := os.ReadFile(args[0])
		if err != nil {
			serviceutil.Fatal("failed to read page", err)
		}
		headers, err := engine.ExtractHeaders(cmd.Context(), string(markup))
		if err != nil {
			serviceutil.Fatal("failed to extract headers", err)
		}

		if *headersJSON {
			err = printJSON(headers)
			if err != nil {
				serviceutil.Fatal("failed to write json", err)
			}
			return
		}

		t := newTable()
		t.AppendHeader(table.Row{"Order", "Date", "Total", "Recipient", "Details"})
		for _, h := range headers {
			t.AppendRow(table.Row{h.ID, formatDate(h.Date), formatMoney(h.Total), h.Recipient, h.DetailURL})
		}
		t.Render()
	},
}
