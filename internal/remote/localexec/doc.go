// Package localexec implements the remote executor for the orchestrating
// machine itself, so "localhost" can appear in a target list alongside
// fleet hosts.
//
// Commands run through os/exec with the caller's context; the
// running-process probe enumerates processes with go-ps instead of
// shelling out.
package localexec
