// Package fleet orchestrates a batch of browser updates across target
// hosts.
//
// The installer artifact is fetched exactly once per batch and shared
// read-only by every worker. Workers run concurrently under a bounded
// cap, each producing exactly one HostResult: a host that cannot be
// reached, fails its install, or needs a browser restart is classified in
// its own row and never aborts its siblings. Output order equals target
// input order and the batch always returns one row per requested target,
// even when the fetch itself fails and the run degrades to
// version-unknown reporting.
package fleet
