package update

import (
	"errors"
	"os"
)

// Target is one host machine slated for an update check or install.
// Read-only for the duration of a run.
type Target struct {
	// Host is the identifier used to reach the machine.
	Host string
	// Product is the browser being updated on it.
	Product Product
}

// Artifact is the downloaded installer shared by a whole batch.
// It is fetched exactly once per invocation, passed read-only into every
// worker, and removed once after all workers complete.
type Artifact struct {
	// Product is the browser this installer belongs to.
	Product Product
	// SourceURL is the endpoint the installer was downloaded from.
	SourceURL string
	// LocalPath is where the installer sits on the orchestrating machine.
	LocalPath string
	// Version is the installer's embedded version, probed after download.
	Version Version
}

// Remove deletes the local installer copy. A missing file is not an error
// so cleanup can run unconditionally.
func (a *Artifact) Remove() error {
	if a == nil || a.LocalPath == "" {
		return nil
	}

	if err := os.Remove(a.LocalPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

// Outcome classifies what happened to one host during a batch run.
type Outcome int

const (
	// OutcomeUnknown is reported when the installer version could not be
	// determined and the batch ran in degraded mode.
	OutcomeUnknown Outcome = iota
	// OutcomeUpdated means the install ran and the host now reports the
	// installer's version.
	OutcomeUpdated
	// OutcomeAlreadyCurrent means the host was at or above the installer
	// version and no install was attempted.
	OutcomeAlreadyCurrent
	// OutcomeFailed means an install was attempted but the host still
	// reports the old version with no running process to explain it.
	OutcomeFailed
	// OutcomeNeedsRestart means the install succeeded on disk but the
	// running browser still holds the old binary until relaunched.
	OutcomeNeedsRestart
	// OutcomeUnreachable means the host could not be contacted at all.
	OutcomeUnreachable
)

// String renders the outcome for the report's Updated column.
func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "Updated"
	case OutcomeAlreadyCurrent:
		return "AlreadyCurrent"
	case OutcomeFailed:
		return "Failed"
	case OutcomeNeedsRestart:
		return "NeedsRestart"
	case OutcomeUnreachable:
		return "Unreachable"
	case OutcomeUnknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// HostResult is the immutable per-target record handed back by a worker
// and consumed by the report.
type HostResult struct {
	// Host is the target's identifier.
	Host string
	// OldVersion is the version installed before the run, if readable.
	OldVersion Version
	// InstallerVersion is the batch artifact's version, empty in degraded mode.
	InstallerVersion Version
	// NewVersion is the version observed after the run.
	NewVersion Version
	// Outcome classifies what happened.
	Outcome Outcome
}
