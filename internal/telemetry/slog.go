package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// paramNames names the positional params of the reports the extraction
// packages emit, keyed by report id without its scope.
var paramNames = map[string][]string{
	"resolver.rule":            {"field", "rule", "panic"},
	"resolver.block":           {"rule", "panic"},
	"assembler.resolve-fields": {"reason", "field"},
	"assembler.resolve-item":   {"reason", "field"},
	"engine.extract-headers":   {"reason", "rule"},
	"engine.sink":              {"err"},
	"assembler: no match":      {"kind", "reason"},
	"engine: parse failure":    {"err"},
}

// SlogAPI implements API using the log/slog package. A nil Logger logs to
// slog.Default().
type SlogAPI struct {
	Logger *slog.Logger
}

func (s SlogAPI) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// unscoped strips the namespaces ScopedAPI prepends, "extract: resolver.rule"
// becomes "resolver.rule".
func unscoped(id string) string {
	for name := range paramNames {
		if id == name || strings.HasSuffix(id, ": "+name) {
			return name
		}
	}
	return id
}

// attrs turns params into slog attributes. Params of known reports get their
// names, errors are always "err" and the rest are numbered.
func attrs(id string, params []any) []any {
	names := paramNames[unscoped(id)]
	out := make([]any, 0, len(params))
	for i, p := range params {
		switch v := p.(type) {
		case slog.Attr:
			out = append(out, v)
			continue
		case error:
			out = append(out, slog.String("err", v.Error()))
			continue
		}
		key := fmt.Sprintf("params.%d", i)
		if i < len(names) {
			key = names[i]
		}
		out = append(out, slog.Any(key, p))
	}
	return out
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	s.logger().Error("broken component", append([]any{slog.String("id", id)}, attrs(id, params)...)...)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	s.logger().Warn("warning", append([]any{slog.String("id", id)}, attrs(id, params)...)...)
}

func (s SlogAPI) ReportDebug(message string, params ...any) {
	logger := s.logger()
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	logger.Debug(message, attrs(message, params)...)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	s.logger().Info("count", "id", id, "n", count)
}
