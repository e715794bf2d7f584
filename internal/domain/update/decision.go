package update

// Observation carries everything a worker learned about one host.
// It is the sole input to Decide, keeping classification free of I/O and
// shared state.
type Observation struct {
	// OldVersion is the version installed before any install attempt.
	OldVersion Version
	// InstallerVersion is the batch artifact's version.
	InstallerVersion Version
	// AttemptedInstall reports whether the install command was run.
	AttemptedInstall bool
	// PostInstallVersion is the version observed after the install attempt.
	PostInstallVersion Version
	// ProcessRunning reports whether the browser process was running
	// when the post-install version was probed.
	ProcessRunning bool
	// Degraded means the installer version could not be determined for
	// this batch, so no comparison is meaningful.
	Degraded bool
}

// Decide classifies an observation into an Outcome.
// Rules are evaluated top-down and the first match wins; the order is
// significant and every observation classifies to something.
//
// The NeedsRestart rule exists because a browser that is open during the
// install keeps the old binary mapped: the files on disk are current but
// the live version string is unchanged until relaunch. Without it a
// successful install on an in-use machine would be misreported as Failed.
func Decide(obs Observation) Outcome {
	switch {
	case obs.Degraded:
		return OutcomeUnknown
	case obs.OldVersion.Equal(obs.InstallerVersion):
		return OutcomeAlreadyCurrent
	case obs.AttemptedInstall && obs.PostInstallVersion.Equal(obs.InstallerVersion):
		return OutcomeUpdated
	case obs.AttemptedInstall && obs.PostInstallVersion.Equal(obs.OldVersion) && obs.ProcessRunning:
		return OutcomeNeedsRestart
	case obs.AttemptedInstall && obs.PostInstallVersion.Equal(obs.OldVersion):
		return OutcomeFailed
	case !obs.AttemptedInstall:
		// The installed version is already newer than the installer.
		return OutcomeAlreadyCurrent
	default:
		// An install was attempted and the host reports some third
		// version, or none at all.
		return OutcomeFailed
	}
}
