package version

import "fmt"

// Build metadata, overridden via ldflags at release time. The defaults
// identify a local development build.
var (
	// Version is the release tag of the build.
	Version = "0.1.0"
	// Commit is the short git SHA the build was cut from.
	Commit = "dev"
	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"
)

// Short returns the bare release tag.
func Short() string {
	return Version
}

// Full renders the release tag together with commit and build timestamp
// for the version subcommand and startup logs.
func Full() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime)
}
