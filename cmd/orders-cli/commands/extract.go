package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"orderhistory/internal/coverage"
	coveragedb "orderhistory/internal/coverage/db"
	"orderhistory/internal/extract"
	"orderhistory/internal/order"
	"orderhistory/lib/sqliteutil"
	"orderhistory/lib/telemetry"
	"orderhistory/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	extractKind   *string
	extractJSON   *bool
	extractDb     *string
	extractFields *bool
)

func init() {
	extractKind = extractCmd.Flags().String("kind", "unknown", "The kind of order the pages are expected to hold (digital, physical or unknown).")
	extractJSON = extractCmd.Flags().Bool("json", false, "Print results as JSON instead of a table.")
	extractDb = extractCmd.Flags().String("db", "", "Record rule coverage to this database, defaults to coverage_db in the config.")
	extractFields = extractCmd.Flags().Bool("fields", false, "Also print how every field was resolved.")
	rootCmd.AddCommand(extractCmd)
}

type fileResult struct {
	Path   string       `json:"path"`
	Result order.Result `json:"result"`
}

var extractCmd = &cobra.Command{
	Use:   "extract [--kind <kind>] [--json] [--db <path/to/coverage.db>] <page.html>...",
	Short: "Extracts the order from each saved order page.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := runExtract(cmd.Context(), args)
		if err != nil {
			serviceutil.Fatal("failed to extract", err)
		}
	},
}

// openCoverageDB is replaced in tests to observe the database lifecycle.
var openCoverageDB = func(path string) (*sql.DB, error) {
	return sqliteutil.OpenDB(coveragedb.Schema, path)
}

// runExtract returns instead of exiting, so the coverage database is closed
// on every path.
func runExtract(ctx context.Context, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	hint, err := order.ParseKind(*extractKind)
	if err != nil {
		return fmt.Errorf("invalid --kind: %w", err)
	}

	var sink extract.ReportSink
	dbPath := *extractDb
	if dbPath == "" {
		dbPath = cfg.CoverageDB
	}
	if dbPath != "" {
		database, err := openCoverageDB(dbPath)
		if err != nil {
			return fmt.Errorf("open coverage db: %w", err)
		}
		defer database.Close()
		sink = coverage.NewStore(database)
	}

	engine, err := newEngine(cfg, sink)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	telemetry.InstrumentPerfStats(ctx, time.Second)

	results := make([]fileResult, len(args))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.Concurrency)
	for i, path := range args {
		group.Go(func() error {
			markup, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			results[i] = fileResult{
				Path:   path,
				Result: engine.Extract(groupCtx, string(markup), hint),
			}
			return nil
		})
	}
	err = group.Wait()
	if err != nil {
		return err
	}

	if *extractJSON {
		return printJSON(results)
	}

	renderResults(results)
	if *extractFields {
		for _, r := range results {
			renderReport(r.Path, r.Result.Report)
		}
	}
	return nil
}

func renderResults(results []fileResult) {
	t := newTable()
	t.AppendHeader(table.Row{"File", "Kind", "Order", "Date", "Total", "Items", "Coverage", "Reason"})
	for _, r := range results {
		res := r.Result
		if res.Order == nil {
			kind := "-"
			if res.Report != nil {
				kind = res.Report.Kind.String()
			}
			t.AppendRow(table.Row{r.Path, kind, "-", "-", "-", 0, formatPercent(res.Report.Coverage()), res.Reason})
			continue
		}
		o := res.Order
		t.AppendRow(table.Row{
			r.Path,
			o.Kind,
			o.ID,
			formatDate(o.Date),
			formatMoney(o.Total),
			len(o.Items),
			formatPercent(res.Report.Coverage()),
			"",
		})
	}
	t.Render()
}

func renderReport(path string, report *order.Report) {
	if report == nil {
		return
	}

	t := newTable()
	t.SetTitle(fmt.Sprintf("%s (%s, %s)", path, report.Kind, report.KindRule))
	t.AppendHeader(table.Row{"Row", "Field", "Resolved", "Rule", "Rule name"})
	appendStatus := func(row string, s order.FieldStatus) {
		t.AppendRow(table.Row{row, s.Field, s.Resolved, s.Rule, s.RuleName})
	}
	for _, s := range report.Fields {
		appendStatus("", s)
	}
	for _, item := range report.Items {
		for _, s := range item.Fields {
			appendStatus(fmt.Sprint(item.Row), s)
		}
	}
	t.Render()
}
