package sshexec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jaydifryah/UpdateBrowsers/internal/domain/update"
	"github.com/jaydifryah/UpdateBrowsers/internal/remote"
)

// versionPattern matches a dotted numeric version anywhere in probe output,
// e.g. "Mozilla Firefox 114.0.2" or a bare "114.0.5735.199".
var versionPattern = regexp.MustCompile(`\d+(?:\.\d+)+`)

// buildCommandLine renders an installer invocation as a single remote
// command line, quoting arguments that need it.
func buildCommandLine(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quoteArg(name))

	for _, arg := range args {
		parts = append(parts, quoteArg(arg))
	}

	return strings.Join(parts, " ")
}

// quoteArg wraps an argument in double quotes when it contains spaces.
func quoteArg(s string) string {
	if strings.ContainsAny(s, " \t") {
		return `"` + s + `"`
	}

	return s
}

// installedVersionCommand renders the remote version probe for a product.
func installedVersionCommand(shell string, product update.Product) string {
	if shell == ShellPosix {
		return product.PosixCommand() + " --version"
	}

	return fmt.Sprintf(
		`powershell -NoProfile -Command "(Get-Item '%s' -ErrorAction SilentlyContinue).VersionInfo.ProductVersion"`,
		product.WindowsExecutablePath(),
	)
}

// processRunningCommand renders the remote running-process probe for a product.
func processRunningCommand(shell string, product update.Product) string {
	if shell == ShellPosix {
		return "pgrep -x " + product.ProcessName()
	}

	return fmt.Sprintf(
		`powershell -NoProfile -Command "[bool](Get-Process -Name '%s' -ErrorAction SilentlyContinue)"`,
		product.ProcessName(),
	)
}

// removeFileCommand renders the remote staged-copy cleanup for a path.
func removeFileCommand(shell, path string) string {
	if shell == ShellPosix {
		return "rm -f " + quoteArg(path)
	}

	return fmt.Sprintf(
		`powershell -NoProfile -Command "Remove-Item -Force -ErrorAction SilentlyContinue '%s'"`,
		path,
	)
}

// extractVersion pulls the first dotted numeric version out of probe output,
// returning "" when there is none (product absent).
func extractVersion(output string) string {
	return versionPattern.FindString(output)
}

// parseRunningOutput interprets the running-process probe result.
// PowerShell prints True/False; pgrep answers via its exit code.
func parseRunningOutput(shell string, result *remote.CommandResult) bool {
	if shell == ShellPosix {
		return result.ExitCode == 0
	}

	return strings.Contains(result.Output, "True")
}

// splitRemotePath splits a remote path into directory and base name,
// handling both Windows and POSIX separators.
func splitRemotePath(path string) (dir, name string) {
	idx := strings.LastIndexAny(path, `/\`)
	if idx < 0 {
		return ".", path
	}

	return path[:idx], path[idx+1:]
}
