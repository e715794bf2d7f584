// Package sshexec implements the remote executor over SSH.
//
// Each command or probe dials the host, runs in its own session, and is
// bounded by the caller's context. Typed probes are translated into
// PowerShell one-liners for Windows fleets or POSIX tooling for Linux
// fleets; files are staged through the remote scp sink so no extra
// transfer protocol is needed on either side.
package sshexec
