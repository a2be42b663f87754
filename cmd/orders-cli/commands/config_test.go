package commands

import (
	"os"
	"path/filepath"
	"testing"

	"orderhistory/lib/configutil"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		err  string
	}{
		{name: "empty", cfg: Config{}},
		{name: "uk", cfg: Config{BaseURL: "https://www.amazon.co.uk", Concurrency: 4}},
		{name: "us dollars", cfg: Config{BaseURL: "https://www.amazon.com", DollarCurrency: "USD"}},
		{name: "relative base url", cfg: Config{BaseURL: "www.amazon.com"}, err: "must be absolute"},
		{name: "unknown currency", cfg: Config{DollarCurrency: "dollars"}, err: "dollar_currency"},
		{name: "negative concurrency", cfg: Config{Concurrency: -2}, err: "concurrency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.err == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.err)
		})
	}
}

func TestReadConfigRejectsBadCurrency(t *testing.T) {
	name := filepath.Join(t.TempDir(), "orders.json5")
	require.NoError(t, os.WriteFile(name, []byte(`{
		base_url: "https://www.amazon.com",
		dollar_currency: "USD",
	}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(name), "orders.local.json5"), []byte(`{dollar_currency: "bucks"}`), 0644))

	_, err := configutil.ReadConfig[Config](name)
	require.ErrorContains(t, err, `dollar_currency "bucks"`)
}

func TestConfigAttributes(t *testing.T) {
	require.Empty(t, Config{}.Attributes())
	require.Equal(t, []attribute.KeyValue{
		attribute.String("storefront.origin", "https://www.amazon.ca"),
		attribute.String("storefront.host", "www.amazon.ca"),
		attribute.String("storefront.dollar_currency", "CAD"),
	}, Config{BaseURL: "https://www.amazon.ca", DollarCurrency: "CAD"}.Attributes())
}
