package configutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// Validator is implemented by config types that check their own values once
// every layer has been merged.
type Validator interface {
	Validate() error
}

// Layers returns the files that make up the config called name, lowest
// priority first: orders.json5 is overridden by orders.local.json5.
func Layers(name string) []string {
	ext := filepath.Ext(name)
	prefix := strings.TrimSuffix(name, ext)
	return []string{name, prefix + ".local" + ext}
}

// readLayer decodes one layer, ok is false when the file does not exist or
// is empty.
func readLayer[T any](path string) (T, bool, error) {
	var out T
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return out, false, nil
	}
	if err != nil {
		return out, false, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return out, false, nil
	}
	err = json5.Unmarshal(data, &out)
	if err != nil {
		return out, false, fmt.Errorf("%s: %w", path, err)
	}
	return out, true, nil
}

// ReadConfig merges the layers of name, later layers overriding the non-zero
// values of earlier ones, and validates the result when T is a Validator. It
// returns os.ErrNotExist when no layer exists.
func ReadConfig[T any](name string) (T, error) {
	var out T
	found := false

	for _, path := range Layers(name) {
		layer, ok, err := readLayer[T](path)
		if err != nil {
			return out, err
		}
		if !ok {
			continue
		}
		if !found {
			out, found = layer, true
			continue
		}
		err = mergo.Merge(&out, layer, mergo.WithOverride)
		if err != nil {
			return out, fmt.Errorf("%s: %w", path, err)
		}
		slog.Info("merging config with local overrides", "local", path)
	}

	if !found {
		return out, os.ErrNotExist
	}
	if v, ok := any(&out).(Validator); ok {
		err := v.Validate()
		if err != nil {
			return out, fmt.Errorf("%s: %w", name, err)
		}
	}
	return out, nil
}

// ReadRecursively is ReadConfig on the first directory, walking up from the
// working directory to the filesystem root, that holds a layer of name.
func ReadRecursively[T any](name string) (T, error) {
	var out T

	dir, err := os.Getwd()
	if err != nil {
		return out, err
	}
	for {
		config, err := ReadConfig[T](filepath.Join(dir, name))
		if !errors.Is(err, os.ErrNotExist) {
			return config, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return out, os.ErrNotExist
		}
		dir = parent
	}
}
