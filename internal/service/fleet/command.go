package fleet

import (
	"context"
	"fmt"

	"github.com/jaydifryah/UpdateBrowsers/internal/config"
	"github.com/jaydifryah/UpdateBrowsers/internal/domain/update"
	"github.com/jaydifryah/UpdateBrowsers/internal/logger"
	"github.com/jaydifryah/UpdateBrowsers/internal/service/fetcher"
)

// Options are inputs accepted by the fleet update entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
	// Product is the browser to update (chrome or firefox).
	Product string
	// Targets is a single host identifier or the path to a
	// newline-delimited file of host identifiers.
	Targets string
	// Concurrency overrides the configured worker cap when positive.
	Concurrency int
}

// Run executes a full batch update and is the public entry point for the
// CLI. It returns one result per target; per-host failures are carried in
// the results, only configuration problems surface as an error.
func Run(ctx context.Context, opts *Options) ([]update.HostResult, error) {
	ctx = logger.WithName(ctx, "browser-updater")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if opts.Concurrency > 0 {
		cfg.Concurrency = opts.Concurrency
	}

	product, err := update.ParseProduct(opts.Product)
	if err != nil {
		return nil, err
	}

	hosts, err := LoadTargets(opts.Targets)
	if err != nil {
		return nil, err
	}

	executor, err := newExecutor(cfg, hosts)
	if err != nil {
		return nil, err
	}

	service := NewService(cfg, fetcher.New(cfg), executor)

	logger.InfoKV(ctx, "Starting batch",
		"product", product, "targets", len(hosts), "concurrency", cfg.Concurrency)

	results := service.RunBatch(ctx, product, hosts)

	logger.Info(ctx, "Batch completed")

	return results, nil
}
