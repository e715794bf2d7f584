// Package remote defines the executor abstraction the fleet core uses to
// reach a target host.
//
// The core only needs two operation shapes: Execute runs a typed unit of
// work on a named host, Probe answers a typed question about host state.
// What to check is decoupled from how to reach the host; implementations
// (SSH, local) translate the typed requests into transport-specific
// invocations. Connectivity failures carry the ConnectivityError type so
// callers can classify an unreachable host without aborting siblings.
package remote
