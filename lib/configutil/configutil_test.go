package configutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseURL     string `json:"base_url"`
	Concurrency int    `json:"concurrency"`
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "orders.json5"), []byte(`{
		// comments are allowed in json5
		base_url: "https://www.amazon.co.uk",
		concurrency: 4,
	}`), 0644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "orders.local.json5"), []byte(`{concurrency: 8}`), 0644)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "orders.json5"))
	require.NoError(t, err)
	require.Equal(t, testConfig{BaseURL: "https://www.amazon.co.uk", Concurrency: 8}, cfg)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "orders.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

type validatedConfig struct {
	Concurrency int `json:"concurrency"`
}

var errNegative = errors.New("concurrency must not be negative")

func (c validatedConfig) Validate() error {
	if c.Concurrency < 0 {
		return errNegative
	}
	return nil
}

func TestReadConfigValidatesMergedLayers(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "orders.json5")
	require.NoError(t, os.WriteFile(name, []byte(`{concurrency: 4}`), 0644))

	cfg, err := ReadConfig[validatedConfig](name)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Concurrency)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.local.json5"), []byte(`{concurrency: -1}`), 0644))
	_, err = ReadConfig[validatedConfig](name)
	require.ErrorIs(t, err, errNegative)
	require.ErrorContains(t, err, name)
}

func TestReadConfigLocalOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.json5"), []byte("  \n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.local.json5"), []byte(`{base_url: "https://www.amazon.de"}`), 0644))

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "orders.json5"))
	require.NoError(t, err)
	require.Equal(t, testConfig{BaseURL: "https://www.amazon.de"}, cfg)
}

func TestReadConfigNamesBrokenLayer(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "orders.local.json5")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.json5"), []byte(`{concurrency: 2}`), 0644))
	require.NoError(t, os.WriteFile(local, []byte(`{concurrency: `), 0644))

	_, err := ReadConfig[testConfig](filepath.Join(dir, "orders.json5"))
	require.ErrorContains(t, err, local)
}

func TestLayers(t *testing.T) {
	require.Equal(t, []string{"conf/orders.json5", "conf/orders.local.json5"}, Layers("conf/orders.json5"))
	require.Equal(t, []string{"orders", "orders.local"}, Layers("orders"))
}

func TestReadRecursivelyWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "orders.json5"), []byte(`{concurrency: 3}`), 0644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := ReadRecursively[testConfig]("orders.json5")
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Concurrency)
}
