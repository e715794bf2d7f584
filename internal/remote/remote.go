package remote

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jaydifryah/UpdateBrowsers/internal/domain/update"
)

// CommandKind enumerates the units of work a worker runs on a host.
type CommandKind int

const (
	// CommandStageFile writes Payload to Path on the host.
	CommandStageFile CommandKind = iota
	// CommandRunInstaller runs Name with Args and waits for completion.
	CommandRunInstaller
	// CommandRemoveFile deletes Path on the host; a missing file is fine.
	CommandRemoveFile
)

// Command is a typed unit of work executed on a host.
// Only the fields relevant to its Kind are set.
type Command struct {
	Kind CommandKind
	// Path is the remote file the command stages or removes.
	Path string
	// Name is the executable to run for CommandRunInstaller.
	Name string
	// Args are the arguments for CommandRunInstaller.
	Args []string
	// Payload is the content written to Path for CommandStageFile.
	Payload io.Reader
	// Size is the payload length in bytes, required by transports that
	// announce it up front.
	Size int64
}

// StageFile builds a command that writes size bytes of payload to path on the host.
func StageFile(path string, payload io.Reader, size int64) Command {
	return Command{Kind: CommandStageFile, Path: path, Payload: payload, Size: size}
}

// RunInstaller builds a command that runs name with args and waits for it.
func RunInstaller(name string, args ...string) Command {
	return Command{Kind: CommandRunInstaller, Name: name, Args: args}
}

// RemoveFile builds a command that deletes path on the host.
func RemoveFile(path string) Command {
	return Command{Kind: CommandRemoveFile, Path: path}
}

// CommandResult reports how a command finished on the host.
type CommandResult struct {
	// ExitCode is the remote process exit status; zero on success.
	ExitCode int
	// Output is the combined stdout and stderr, for logging.
	Output string
}

// ProbeKind enumerates the questions a worker asks about host state.
type ProbeKind int

const (
	// ProbeInstalledVersion asks which version of the product is installed.
	ProbeInstalledVersion ProbeKind = iota
	// ProbeProcessRunning asks whether the product's process is running.
	ProbeProcessRunning
)

// Probe is a typed question about host state.
type Probe struct {
	Kind    ProbeKind
	Product update.Product
}

// ProbeResult carries the answer to a probe.
type ProbeResult struct {
	// Version is the installed version string, empty when the product
	// is absent or its version is unreadable.
	Version string
	// Running reports whether the product's process was found.
	Running bool
}

// Executor runs commands and probes on named hosts.
// Implementations must return *ConnectivityError when the host cannot be
// reached at all, and ordinary errors for everything else.
type Executor interface {
	Execute(ctx context.Context, host string, cmd Command) (*CommandResult, error)
	Probe(ctx context.Context, host string, probe Probe) (*ProbeResult, error)
}

// ConnectivityError reports that a host could not be reached at all
// (refused, timed out, no route). It is per host and never fatal to a batch.
type ConnectivityError struct {
	Host string
	Err  error
}

// Error implements the error interface.
func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("host %s unreachable: %v", e.Host, e.Err)
}

// Unwrap exposes the underlying transport error.
func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// IsConnectivity reports whether err is a connectivity failure.
func IsConnectivity(err error) bool {
	var connectivityError *ConnectivityError
	return errors.As(err, &connectivityError)
}
