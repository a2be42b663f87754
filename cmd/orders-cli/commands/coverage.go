package commands

import (
	"context"
	"errors"
	"fmt"

	"orderhistory/internal/coverage"
	"orderhistory/internal/order"
	"orderhistory/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	coverageDb    *string
	coverageField *string
)

func init() {
	coverageDb = coverageCmd.Flags().String("db", "", "The coverage database, defaults to coverage_db in the config.")
	coverageField = coverageCmd.Flags().String("field", "", "Rank the rules of one field instead of summarising every field.")
	rootCmd.AddCommand(coverageCmd)
}

var coverageCmd = &cobra.Command{
	Use:   "coverage [--db <path/to/coverage.db>] [--field <field>]",
	Short: "Shows how often each field resolved and which rules resolved it.",
	Run: func(cmd *cobra.Command, args []string) {
		err := runCoverage(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to show coverage", err)
		}
	},
}

func runCoverage(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dbPath := *coverageDb
	if dbPath == "" {
		dbPath = cfg.CoverageDB
	}
	if dbPath == "" {
		return errors.New("no coverage database, pass --db or set coverage_db in the config")
	}

	database, err := openCoverageDB(dbPath)
	if err != nil {
		return fmt.Errorf("open coverage db: %w", err)
	}
	defer database.Close()
	store := coverage.NewStore(database)

	if *coverageField != "" {
		ranking, err := store.Ranking(ctx, order.Field(*coverageField))
		if err != nil {
			return fmt.Errorf("rank rules: %w", err)
		}
		t := newTable()
		t.SetTitle(fmt.Sprintf("rules for %s", *coverageField))
		t.AppendHeader(table.Row{"Kind", "Rule", "Rule name", "Hits"})
		for _, r := range ranking {
			t.AppendRow(table.Row{r.Kind, r.Rule, r.RuleName, r.Hits})
		}
		t.Render()
		return nil
	}

	counts, err := store.Extractions(ctx)
	if err != nil {
		return fmt.Errorf("count extractions: %w", err)
	}
	t := newTable()
	t.SetTitle("extractions")
	t.AppendHeader(table.Row{"Kind", "Reason", "Count"})
	for _, c := range counts {
		reason := string(c.Reason)
		if reason == "" {
			reason = "ok"
		}
		t.AppendRow(table.Row{c.Kind, reason, c.Count})
	}
	t.Render()

	summary, err := store.Summary(ctx)
	if err != nil {
		return fmt.Errorf("summarise coverage: %w", err)
	}
	t = newTable()
	t.SetTitle("fields")
	t.AppendHeader(table.Row{"Kind", "Field", "Resolved", "Unresolved", "Hit rate"})
	for _, s := range summary {
		t.AppendRow(table.Row{s.Kind, s.Field, s.Resolved, s.Unresolved, formatPercent(s.HitRate())})
	}
	t.Render()
	return nil
}
