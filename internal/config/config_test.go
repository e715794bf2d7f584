package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaydifryah/UpdateBrowsers/internal/domain/update"
)

// TestValidate checks rejection of bad values and defaulting of unset ones.
func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := &Config{Concurrency: -1}
	require.Error(t, Validate(cfg))

	cfg = &Config{SSH: SSH{Shell: "cmd"}}
	require.Error(t, Validate(cfg))

	cfg = &Config{Products: map[string]ProductSettings{"opera": {}}}
	require.Error(t, Validate(cfg))

	cfg = &Config{Products: map[string]ProductSettings{"chrome": {DownloadURL: "not a url"}}}
	require.Error(t, Validate(cfg))

	cfg = &Config{}
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultConcurrency, cfg.Concurrency)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Equal(t, DefaultSSHPort, cfg.SSH.Port)
	require.Equal(t, ShellPowerShell, cfg.SSH.Shell)
	require.NotEmpty(t, cfg.StagingDir)
}

// TestLoad reads settings back from YAML and falls back to defaults when
// no default settings file exists.
func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	contents := []byte(`
concurrency: 4
ssh:
  user: updater
  shell: posix
products:
  firefox:
    download_url: "https://mirror.local/firefox-latest.exe"
`)
	require.NoError(t, os.WriteFile(path, contents, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Concurrency)
	require.Equal(t, "updater", cfg.SSH.User)
	require.Equal(t, ShellPosix, cfg.SSH.Shell)
	require.Equal(t, "https://mirror.local/firefox-latest.exe", cfg.DownloadURL(update.ProductFirefox))

	// Unset products keep vendor defaults.
	require.Equal(t, update.ProductChrome.DefaultDownloadURL(), cfg.DownloadURL(update.ProductChrome))

	// Explicit missing path is an error.
	_, err = Load(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
}

// TestLoadDefaultAbsent ensures the implicit default file being absent is not an error.
func TestLoadDefaultAbsent(t *testing.T) {
	// No t.Parallel: the test changes the working directory.
	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultConcurrency, cfg.Concurrency)

	// The CLI passes the default filename explicitly; its absence must
	// fall back the same way an empty path does.
	cfg, err = Load(DefaultConfigFilename)
	require.NoError(t, err)
	require.Equal(t, DefaultConcurrency, cfg.Concurrency)
}
