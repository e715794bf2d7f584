package fleet

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jaydifryah/UpdateBrowsers/internal/config"
	"github.com/jaydifryah/UpdateBrowsers/internal/domain/update"
	"github.com/jaydifryah/UpdateBrowsers/internal/logger"
	"github.com/jaydifryah/UpdateBrowsers/internal/remote"
)

// ArtifactFetcher supplies the batch's shared installer artifact.
type ArtifactFetcher interface {
	Fetch(ctx context.Context, product update.Product) (*update.Artifact, error)
}

// Service runs one batch of host updates for a product.
type Service struct {
	cfg      *config.Config
	fetcher  ArtifactFetcher
	executor remote.Executor
}

// NewService wires a Service from its collaborators.
func NewService(cfg *config.Config, artifactFetcher ArtifactFetcher, executor remote.Executor) *Service {
	return &Service{
		cfg:      cfg,
		fetcher:  artifactFetcher,
		executor: executor,
	}
}

// RunBatch updates every host and returns exactly one result per host, in
// input order. The artifact is fetched once up front; a fetch failure
// degrades the batch to version-unknown reporting instead of aborting.
// Cancellation stops dispatching new workers, but every requested target
// still gets a row.
func (s *Service) RunBatch(ctx context.Context, product update.Product, hosts []string) []update.HostResult {
	artifact, err := s.fetcher.Fetch(ctx, product)
	if err != nil {
		logger.WarnKV(ctx, "Installer fetch failed, continuing in degraded mode", "error", err)

		artifact = nil
	} else {
		// One artifact, one cleanup, after all workers are done.
		defer func() {
			if removeErr := artifact.Remove(); removeErr != nil {
				logger.WarnKV(ctx, "Could not remove batch artifact", "error", removeErr)
			}
		}()
	}

	results := make([]update.HostResult, len(hosts))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.cfg.Concurrency)

	for i, host := range hosts {
		if groupCtx.Err() != nil {
			// Batch canceled: stop dispatching, but the report still
			// carries one row per requested target.
			results[i] = unreachableResult(host, artifact)
			continue
		}

		i, host := i, host
		group.Go(func() error {
			// Each worker writes only its own slot, so no locking is
			// needed and output order matches input order.
			results[i] = s.runHost(groupCtx, host, product, artifact)
			return nil
		})
	}

	_ = group.Wait()

	return results
}

// unreachableResult is the row for a host that was never contacted.
// The versions stay empty; the installer column still reflects the batch.
func unreachableResult(host string, artifact *update.Artifact) update.HostResult {
	result := update.HostResult{Host: host, Outcome: update.OutcomeUnreachable}
	if artifact != nil {
		result.InstallerVersion = artifact.Version
	}

	return result
}
