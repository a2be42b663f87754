package commands

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"runtime"

	"orderhistory/internal/extract"
	"orderhistory/lib/configutil"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/currency"
)

// Config is the shape of orders.json5.
type Config struct {
	BaseURL        string `json:"base_url"`
	DollarCurrency string `json:"dollar_currency"`
	Concurrency    int    `json:"concurrency"`
	CoverageDB     string `json:"coverage_db"`
}

// Validate rejects storefront settings the engine could not use, so that a
// bad config file fails before any page is read.
func (c Config) Validate() error {
	var errs []error
	if c.BaseURL != "" {
		base, err := url.Parse(c.BaseURL)
		if err != nil {
			errs = append(errs, fmt.Errorf("base_url: %w", err))
		} else if base.Scheme == "" || base.Host == "" {
			errs = append(errs, fmt.Errorf("base_url %q must be absolute", c.BaseURL))
		}
	}
	if c.DollarCurrency != "" {
		_, err := currency.ParseISO(c.DollarCurrency)
		if err != nil {
			errs = append(errs, fmt.Errorf("dollar_currency %q: %w", c.DollarCurrency, err))
		}
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency))
	}
	return errors.Join(errs...)
}

// Attributes describe the storefront on exported telemetry.
func (c Config) Attributes() []attribute.KeyValue {
	var out []attribute.KeyValue
	if c.BaseURL != "" {
		out = append(out, attribute.String("storefront.origin", c.BaseURL))
		if base, err := url.Parse(c.BaseURL); err == nil && base.Host != "" {
			out = append(out, attribute.String("storefront.host", base.Hostname()))
		}
	}
	if c.DollarCurrency != "" {
		out = append(out, attribute.String("storefront.dollar_currency", c.DollarCurrency))
	}
	return out
}

// loadConfig reads the config file if there is one, flags win over it.
func loadConfig() (Config, error) {
	cfg, err := configutil.ReadRecursively[Config](*configName)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}

	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *dollar != "" {
		cfg.DollarCurrency = *dollar
	}
	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.NumCPU()
	}
	return cfg, nil
}

func newEngine(cfg Config, sink extract.ReportSink) (*extract.Engine, error) {
	return extract.NewEngine(extract.Options{
		BaseURL:        cfg.BaseURL,
		DollarCurrency: cfg.DollarCurrency,
		Sink:           sink,
	})
}
