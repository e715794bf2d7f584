package fleet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jaydifryah/UpdateBrowsers/internal/domain/update"
	"github.com/jaydifryah/UpdateBrowsers/internal/logger"
	"github.com/jaydifryah/UpdateBrowsers/internal/remote"
)

var errStagingExit = errors.New("staging command exited non-zero")

// runHost drives the check-skip-install-verify cycle for a single target
// and always hands back a result, never an error: connectivity failures
// become Unreachable rows and anything else folds into the classifier.
func (s *Service) runHost(ctx context.Context, host string, product update.Product, artifact *update.Artifact) update.HostResult {
	ctx = logger.WithKV(ctx, "host", host)

	degraded := artifact == nil
	result := update.HostResult{Host: host}

	if !degraded {
		result.InstallerVersion = artifact.Version
	}

	probed, err := s.executor.Probe(ctx, host, remote.Probe{Kind: remote.ProbeInstalledVersion, Product: product})
	if err != nil {
		if remote.IsConnectivity(err) {
			logger.WarnKV(ctx, "Host unreachable", "error", err)
			return unreachableResult(host, artifact)
		}

		// Fails soft: an unreadable version means the product is not
		// installed, which is exactly the first-install case.
		logger.WarnKV(ctx, "Could not read installed version, treating as not installed", "error", err)
	} else {
		result.OldVersion = update.ParseVersion(probed.Version)
	}

	observation := update.Observation{
		OldVersion:       result.OldVersion,
		InstallerVersion: result.InstallerVersion,
		Degraded:         degraded,
	}

	if degraded {
		result.Outcome = update.Decide(observation)
		return result
	}

	if result.OldVersion.Compare(artifact.Version) >= 0 {
		logger.InfoKV(ctx, "Host is current, skipping install",
			"installed", result.OldVersion, "installer", artifact.Version)

		result.NewVersion = result.OldVersion
		result.Outcome = update.Decide(observation)

		return result
	}

	logger.InfoKV(ctx, "Updating host",
		"installed", result.OldVersion, "installer", artifact.Version)

	stagedPath := joinRemote(s.cfg.RemoteStagingDir, product.InstallerFilename())

	if err = s.stageInstaller(ctx, host, artifact, stagedPath); err != nil {
		// The staged copy may or may not exist after a partial
		// transfer; cleanup is attempted regardless.
		s.removeStagedCopy(ctx, host, stagedPath)

		if remote.IsConnectivity(err) {
			logger.WarnKV(ctx, "Host unreachable while staging installer", "error", err)
			return unreachableResult(host, artifact)
		}

		logger.ErrorKV(ctx, "Staging installer failed", "error", err)

		result.Outcome = update.OutcomeFailed

		return result
	}

	defer s.removeStagedCopy(ctx, host, stagedPath)

	observation.AttemptedInstall = true

	name, args := product.InstallCommand(stagedPath)

	installed, err := s.executor.Execute(ctx, host, remote.RunInstaller(name, args...))

	switch {
	case err != nil && remote.IsConnectivity(err):
		logger.WarnKV(ctx, "Host unreachable while installing", "error", err)
		return unreachableResult(host, artifact)
	case err != nil:
		// An install error is not surfaced on its own; the
		// post-install version comparison decides what it meant.
		logger.WarnKV(ctx, "Install command failed", "error", err)
	case installed.ExitCode != 0:
		logger.WarnKV(ctx, "Installer exited non-zero",
			"exit_code", installed.ExitCode, "output", strings.TrimSpace(installed.Output))
	}

	reProbed, err := s.executor.Probe(ctx, host, remote.Probe{Kind: remote.ProbeInstalledVersion, Product: product})
	if err != nil {
		if remote.IsConnectivity(err) {
			logger.WarnKV(ctx, "Host unreachable after install", "error", err)
			return unreachableResult(host, artifact)
		}

		logger.WarnKV(ctx, "Could not read post-install version", "error", err)
	} else {
		observation.PostInstallVersion = update.ParseVersion(reProbed.Version)
	}

	process, err := s.executor.Probe(ctx, host, remote.Probe{Kind: remote.ProbeProcessRunning, Product: product})
	if err != nil {
		if remote.IsConnectivity(err) {
			logger.WarnKV(ctx, "Host unreachable while checking process", "error", err)
			return unreachableResult(host, artifact)
		}

		logger.WarnKV(ctx, "Could not check running process", "error", err)
	} else {
		observation.ProcessRunning = process.Running
	}

	result.NewVersion = observation.PostInstallVersion
	result.Outcome = update.Decide(observation)

	logger.InfoKV(ctx, "Host classified",
		"outcome", result.Outcome, "new_version", result.NewVersion)

	return result
}

// stageInstaller copies the shared artifact to the host's staging path.
func (s *Service) stageInstaller(ctx context.Context, host string, artifact *update.Artifact, stagedPath string) error {
	payload, err := os.Open(artifact.LocalPath)
	if err != nil {
		return err
	}

	defer func() {
		_ = payload.Close()
	}()

	info, err := payload.Stat()
	if err != nil {
		return err
	}

	staged, err := s.executor.Execute(ctx, host, remote.StageFile(stagedPath, payload, info.Size()))
	if err != nil {
		return err
	}

	// A non-zero exit means the remote side rejected or truncated the
	// copy; running the installer against it would be meaningless.
	if staged.ExitCode != 0 {
		return fmt.Errorf("%w: exit code %d: %s",
			errStagingExit, staged.ExitCode, strings.TrimSpace(staged.Output))
	}

	return nil
}

// removeStagedCopy deletes the per-host installer copy. It runs on every
// exit path once staging was attempted, with its own deadline so a
// canceled batch still cleans up, and only logs failures: leaked disk
// space on one host must not change that host's classification.
func (s *Service) removeStagedCopy(ctx context.Context, host, stagedPath string) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Timeout)
	defer cancel()

	if _, err := s.executor.Execute(cleanupCtx, host, remote.RemoveFile(stagedPath)); err != nil {
		logger.WarnKV(ctx, "Could not remove staged installer", "path", stagedPath, "error", err)
	}
}

// joinRemote joins a remote directory and filename using the separator
// the directory already uses, so Windows and POSIX staging dirs both work.
func joinRemote(dir, name string) string {
	separator := "/"
	if strings.Contains(dir, `\`) {
		separator = `\`
	}

	return strings.TrimRight(dir, `/\`) + separator + name
}
