package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jaydifryah/UpdateBrowsers/internal/config"
	"github.com/jaydifryah/UpdateBrowsers/internal/logger"
	"github.com/jaydifryah/UpdateBrowsers/internal/report"
	"github.com/jaydifryah/UpdateBrowsers/internal/service/fleet"
	"github.com/jaydifryah/UpdateBrowsers/internal/service/selfupdate"
	"github.com/jaydifryah/UpdateBrowsers/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// product is the browser to update on the targets.
	product string

	// concurrency overrides the configured worker cap when positive.
	concurrency int

	// logLevel controls log verbosity.
	logLevel string

	// rootCmd represents the base command for running a batch update.
	rootCmd = &cobra.Command{
		Use:   "browser-updater [host-or-hosts-file]",
		Short: "Update browsers across a fleet of hosts",
		Long: "browser-updater checks the installed browser version on every target host,\n" +
			"installs the current release where it is stale and prints a per-host report.",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			applyLogLevel()

			options := &fleet.Options{
				ConfigPath:  configPath,
				Product:     product,
				Targets:     args[0],
				Concurrency: concurrency,
			}

			results, err := fleet.Run(ctx, options)
			if err != nil {
				return err
			}

			return report.Render(os.Stdout, results)
		},
	}

	// selfUpdateCmd replaces the running binary with a published build.
	selfUpdateCmd = &cobra.Command{
		Use:   "self-update [binary-url]",
		Short: "Replace this binary with a published build",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			applyLogLevel()

			return selfupdate.Run(ctx, &selfupdate.Options{URL: args[0]})
		},
	}
)

// Execute runs the browser-updater CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	rootCmd.AddCommand(selfUpdateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func applyLogLevel() {
	if level, ok := logger.ParseLogLevel(logLevel); ok {
		logger.SetLevel(level)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVarP(&product, "product", "p", "", "browser to update (chrome or firefox)")
	rootCmd.Flags().IntVarP(&concurrency, "concurrency", "n", 0, "maximum hosts updated in parallel (0 = configured value)")

	_ = rootCmd.MarkFlagRequired("product")
}
