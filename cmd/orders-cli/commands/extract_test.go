package commands

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"orderhistory/internal/coverage"
	"orderhistory/internal/order"

	"github.com/stretchr/testify/require"
)

// trackCoverageDB records every database the extract command opens.
func trackCoverageDB(t *testing.T) *[]*sql.DB {
	t.Helper()
	var opened []*sql.DB
	open := openCoverageDB
	openCoverageDB = func(path string) (*sql.DB, error) {
		database, err := open(path)
		if database != nil {
			opened = append(opened, database)
		}
		return database, err
	}
	t.Cleanup(func() { openCoverageDB = open })
	return &opened
}

func setFlag(t *testing.T, name, value string) {
	t.Helper()
	flag := extractCmd.Flags().Lookup(name)
	require.NotNil(t, flag)
	previous := flag.Value.String()
	require.NoError(t, extractCmd.Flags().Set(name, value))
	t.Cleanup(func() { _ = extractCmd.Flags().Set(name, previous) })
}

func TestExtractClosesCoverageDBOnFailure(t *testing.T) {
	opened := trackCoverageDB(t)
	setFlag(t, "db", filepath.Join(t.TempDir(), "coverage.db"))

	err := runExtract(context.Background(), []string{filepath.Join(t.TempDir(), "missing.html")})
	require.ErrorIs(t, err, os.ErrNotExist)

	require.Len(t, *opened, 1)
	require.Error(t, (*opened)[0].Ping(), "the coverage db is still open")
}

func TestExtractRecordsCoverage(t *testing.T) {
	opened := trackCoverageDB(t)
	dbPath := filepath.Join(t.TempDir(), "coverage.db")
	setFlag(t, "db", dbPath)
	setFlag(t, "json", "true")

	err := runExtract(context.Background(), []string{
		filepath.Join("..", "..", "..", "internal", "extract", "testdata", "physical_us_2016.html"),
		filepath.Join("..", "..", "..", "internal", "extract", "testdata", "help_page.html"),
	})
	require.NoError(t, err)
	require.Len(t, *opened, 1)
	require.Error(t, (*opened)[0].Ping())

	database, err := openCoverageDB(dbPath)
	require.NoError(t, err)
	defer database.Close()

	counts, err := coverage.NewStore(database).Extractions(context.Background())
	require.NoError(t, err)
	require.Equal(t, []coverage.ExtractionCount{
		{Kind: order.KindDigital, Reason: order.ReasonNotOrderPage, Count: 1},
		{Kind: order.KindPhysical, Reason: order.ReasonNone, Count: 1},
	}, counts)
}
