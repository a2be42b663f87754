package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"orderhistory/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configName *string
	baseURL    *string
	dollar     *string
	debug      *bool
)

func init() {
	configName = rootCmd.PersistentFlags().String("config", "orders.json5", "The config file, searched for in the working directory and its parents.")
	baseURL = rootCmd.PersistentFlags().String("base-url", "", "The storefront origin, overrides base_url in the config.")
	dollar = rootCmd.PersistentFlags().String("dollar", "", "The ISO currency a bare $ stands for, overrides dollar_currency in the config.")
	debug = rootCmd.PersistentFlags().Bool("debug", false, "Log rule level debug output.")
}

// exported is the telemetry installed for the running command, it is
// flushed when the command returns.
var exported telemetry.Telemetry

var rootCmd = &cobra.Command{
	Use:   "orders-cli",
	Short: "orders-cli extracts orders from saved order pages and tracks how well the extraction rules hold up.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if *debug {
			telemetry.InitSlog(true)
		}
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		exported, err = telemetry.SetupFromEnv(cmd.Context(), "orders-cli", cfg.Attributes()...)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}
		return nil
	},
}

func flushTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := exported.Shutdown(ctx)
	if err != nil {
		slog.Warn("failed to flush telemetry", "err", err)
	}
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	flushTelemetry()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
