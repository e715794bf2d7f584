package localexec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/jaydifryah/UpdateBrowsers/internal/domain/update"
	"github.com/jaydifryah/UpdateBrowsers/internal/remote"
)

var (
	errUnknownKind = errors.New("local: unknown command kind")

	// versionPattern matches a dotted numeric version in --version output.
	versionPattern = regexp.MustCompile(`\d+(?:\.\d+)+`)
)

// Executor runs commands and probes on the orchestrating machine.
// The zero value is ready to use.
type Executor struct{}

// New returns a local executor.
func New() *Executor {
	return &Executor{}
}

// Execute runs a typed command locally.
func (e *Executor) Execute(ctx context.Context, _ string, cmd remote.Command) (*remote.CommandResult, error) {
	switch cmd.Kind {
	case remote.CommandStageFile:
		return stageFile(cmd)
	case remote.CommandRunInstaller:
		return runCommand(ctx, cmd.Name, cmd.Args...)
	case remote.CommandRemoveFile:
		if err := os.Remove(cmd.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}

		return &remote.CommandResult{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", errUnknownKind, cmd.Kind)
	}
}

// Probe answers a typed question about this machine.
func (e *Executor) Probe(ctx context.Context, _ string, probe remote.Probe) (*remote.ProbeResult, error) {
	switch probe.Kind {
	case remote.ProbeInstalledVersion:
		return probeInstalledVersion(ctx, probe.Product)
	case remote.ProbeProcessRunning:
		running, err := isProcessRunning(probe.Product.ProcessName())
		if err != nil {
			return nil, err
		}

		return &remote.ProbeResult{Running: running}, nil
	default:
		return nil, fmt.Errorf("%w: probe %d", errUnknownKind, probe.Kind)
	}
}

func stageFile(cmd remote.Command) (*remote.CommandResult, error) {
	out, err := os.Create(cmd.Path)
	if err != nil {
		return nil, err
	}

	if _, err = io.Copy(out, cmd.Payload); err != nil {
		_ = out.Close()

		return nil, err
	}

	if err = out.Close(); err != nil {
		return nil, err
	}

	return &remote.CommandResult{}, nil
}

func runCommand(ctx context.Context, name string, args ...string) (*remote.CommandResult, error) {
	output, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	result := &remote.CommandResult{Output: string(output)}

	var exitError *exec.ExitError
	if errors.As(err, &exitError) {
		result.ExitCode = exitError.ExitCode()
		return result, nil
	}

	if err != nil {
		return nil, err
	}

	return result, nil
}

// probeInstalledVersion reads the locally installed browser version.
// Failure to run the binary means the product is absent: soft result,
// not an error.
func probeInstalledVersion(ctx context.Context, product update.Product) (*remote.ProbeResult, error) {
	var output []byte

	var err error

	if runtime.GOOS == "windows" {
		script := fmt.Sprintf(
			"(Get-Item '%s' -ErrorAction SilentlyContinue).VersionInfo.ProductVersion",
			product.WindowsExecutablePath(),
		)
		output, err = exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", script).Output()
	} else {
		output, err = exec.CommandContext(ctx, product.PosixCommand(), "--version").Output()
	}

	if err != nil {
		return &remote.ProbeResult{}, nil
	}

	return &remote.ProbeResult{Version: versionPattern.FindString(string(output))}, nil
}

// isProcessRunning reports whether a process with the product's name is
// alive, tolerating the platform's executable extension.
func isProcessRunning(name string) (bool, error) {
	processes, err := ps.Processes()
	if err != nil {
		return false, err
	}

	for _, process := range processes {
		executable := strings.TrimSuffix(process.Executable(), ".exe")
		if strings.EqualFold(executable, name) {
			return true, nil
		}
	}

	return false, nil
}
