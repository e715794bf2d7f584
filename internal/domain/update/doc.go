// Package update contains the core domain types for the fleet updater.
//
// It defines the supported browser products and their install profiles,
// the dotted-numeric Version ordering, the per-host Target and HostResult
// records, and the pure classifier that turns per-host observations into
// a reported Outcome.
package update
