package fetcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

var (
	errNoProductVersion = errors.New("no ProductVersion in MSI property table")
	errHelperMissing    = errors.New("version probe helper is not installed")
)

// msiProber reads the ProductVersion property of an MSI package through
// the msitools `msiinfo` helper. A missing helper is reported as such so
// the batch can degrade instead of crashing.
type msiProber struct {
	msiinfoPath string
}

func (p *msiProber) ProbeVersion(ctx context.Context, installerPath string) (string, error) {
	output, err := exec.CommandContext(ctx, p.msiinfoPath, "export", installerPath, "Property").Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", errHelperMissing, p.msiinfoPath)
		}

		return "", fmt.Errorf("msiinfo export: %w", err)
	}

	return parseProductVersion(string(output))
}

// parseProductVersion finds the ProductVersion row in an exported MSI
// Property table. Rows are tab-separated name/value pairs.
func parseProductVersion(table string) (string, error) {
	for _, line := range strings.Split(table, "\n") {
		name, value, found := strings.Cut(strings.TrimRight(line, "\r"), "\t")
		if found && name == "ProductVersion" {
			return strings.TrimSpace(value), nil
		}
	}

	return "", errNoProductVersion
}

// sfxProber opens the Firefox self-extracting installer with 7-Zip and
// reads the bundled application.ini. The extraction tree is removed on
// every exit path; only the downloaded installer itself outlives the probe.
type sfxProber struct {
	sevenZipPath string
}

func (p *sfxProber) ProbeVersion(ctx context.Context, installerPath string) (version string, err error) {
	extractDir, err := os.MkdirTemp("", "browser-updater-extract-")
	if err != nil {
		return "", fmt.Errorf("create extraction dir: %w", err)
	}

	defer func() {
		if removeErr := os.RemoveAll(extractDir); removeErr != nil && err == nil {
			err = fmt.Errorf("remove extraction dir: %w", removeErr)
		}
	}()

	cmd := exec.CommandContext(ctx, p.sevenZipPath, "x", "-y", "-o"+extractDir, installerPath)
	if output, runErr := cmd.CombinedOutput(); runErr != nil {
		if errors.Is(runErr, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", errHelperMissing, p.sevenZipPath)
		}

		return "", fmt.Errorf("extract installer: %w: %s", runErr, strings.TrimSpace(string(output)))
	}

	return readApplicationVersion(extractDir)
}

// readApplicationVersion reads [App] Version from the application.ini that
// the installer bundles under core/.
func readApplicationVersion(extractDir string) (string, error) {
	appINI, err := ini.Load(filepath.Join(extractDir, "core", "application.ini"))
	if err != nil {
		return "", fmt.Errorf("read application.ini: %w", err)
	}

	return appINI.Section("App").Key("Version").String(), nil
}
