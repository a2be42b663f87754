package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedRecorder(t *testing.T) {
	recorder := &Recorder{}
	api := NewScopedAPI("extract", recorder)

	api.ReportWarning("resolver.rule", "title", "product link text")
	api.ReportBroken("engine.sink", errors.New("disk full"))
	api.ReportCount("engine.extract", 3)
	api.ReportDebug("assembler: no match", "digital")

	records := recorder.Records()
	require.Len(t, records, 4)
	require.Equal(t, "extract: resolver.rule", records[0].ID)
	require.Equal(t, []any{"title", "product link text"}, records[0].Params)
	require.Equal(t, int64(3), records[2].Count)

	require.Len(t, recorder.Find(LevelBroken, "engine.sink"), 1)
	require.Empty(t, recorder.Find(LevelWarning, "engine.sink"))
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	decoder := json.NewDecoder(buf)
	for decoder.More() {
		var line map[string]any
		require.NoError(t, decoder.Decode(&line))
		delete(line, "time")
		out = append(out, line)
	}
	return out
}

func TestSlogNamesReportParams(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	api := NewScopedAPI("extract", SlogAPI{Logger: logger})

	api.ReportWarning("resolver.rule", "tax", "#od-subtotals label", "index out of range")
	api.ReportBroken("engine.sink", errors.New("disk full"))
	api.ReportDebug("assembler: no match", "digital", "not an order page")
	api.ReportWarning("unknown.component", "a", 2)
	api.ReportCount("engine.extract", 3)

	require.Equal(t, []map[string]any{
		{"level": "WARN", "msg": "warning", "id": "extract: resolver.rule", "field": "tax", "rule": "#od-subtotals label", "panic": "index out of range"},
		{"level": "ERROR", "msg": "broken component", "id": "extract: engine.sink", "err": "disk full"},
		{"level": "DEBUG", "msg": "extract: assembler: no match", "kind": "digital", "reason": "not an order page"},
		{"level": "WARN", "msg": "warning", "id": "extract: unknown.component", "params.0": "a", "params.1": float64(2)},
		{"level": "INFO", "msg": "count", "id": "extract: engine.extract", "n": float64(3)},
	}, decodeLines(t, &buf))
}

func TestSlogSkipsDebugAboveLevel(t *testing.T) {
	var buf bytes.Buffer
	api := SlogAPI{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	api.ReportDebug("engine: parse failure", errors.New("empty document"))
	require.Zero(t, buf.Len())
}
