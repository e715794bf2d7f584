package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaydifryah/UpdateBrowsers/internal/config"
	"github.com/jaydifryah/UpdateBrowsers/internal/domain/update"
)

// stubProber returns a fixed version string.
type stubProber struct {
	version string
	err     error
}

func (p *stubProber) ProbeVersion(_ context.Context, _ string) (string, error) {
	return p.version, p.err
}

func testConfig(t *testing.T, downloadURL string) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.StagingDir = t.TempDir()
	cfg.Products = map[string]config.ProductSettings{
		string(update.ProductChrome): {DownloadURL: downloadURL},
	}

	return cfg
}

// TestFetch downloads the artifact, probes its version, and overwrites a
// stale artifact from a previous run at the same path.
func TestFetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("msi-bytes"))
	}))
	t.Cleanup(server.Close)

	cfg := testConfig(t, server.URL)
	f := New(cfg, WithProber(update.ProductChrome, &stubProber{version: "114.0.5735.199"}))

	// Stale leftover from a previous run, longer than the new artifact
	// to prove truncation.
	stalePath := filepath.Join(cfg.StagingDir, update.ProductChrome.InstallerFilename())
	require.NoError(t, os.WriteFile(stalePath, []byte("stale-bytes-from-a-previous-run"), 0o644))

	artifact, err := f.Fetch(context.Background(), update.ProductChrome)
	require.NoError(t, err)
	require.Equal(t, update.ProductChrome, artifact.Product)
	require.Equal(t, "114.0.5735.199", artifact.Version.String())
	require.Equal(t, stalePath, artifact.LocalPath)

	contents, err := os.ReadFile(artifact.LocalPath)
	require.NoError(t, err)
	require.Equal(t, "msi-bytes", string(contents))

	// Remove deletes the local copy, twice is fine.
	require.NoError(t, artifact.Remove())
	require.NoFileExists(t, artifact.LocalPath)
	require.NoError(t, artifact.Remove())
}

// TestFetchBadStatus reports a non-200 endpoint as an error.
func TestFetchBadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	f := New(testConfig(t, server.URL))

	_, err := f.Fetch(context.Background(), update.ProductChrome)
	require.ErrorIs(t, err, errBadHTTPStatus)
}

// TestFetchUnparsableVersion rejects a probe result that is not a version.
func TestFetchUnparsableVersion(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("msi-bytes"))
	}))
	t.Cleanup(server.Close)

	f := New(testConfig(t, server.URL), WithProber(update.ProductChrome, &stubProber{version: "garbage"}))

	_, err := f.Fetch(context.Background(), update.ProductChrome)
	require.ErrorIs(t, err, errVersionUnparsable)
}

// TestParseProductVersion reads the version out of an exported Property table.
func TestParseProductVersion(t *testing.T) {
	t.Parallel()

	table := "Property\tValue\r\nProductName\tGoogle Chrome\r\nProductVersion\t114.0.5735.199\r\n"

	got, err := parseProductVersion(table)
	require.NoError(t, err)
	require.Equal(t, "114.0.5735.199", got)

	_, err = parseProductVersion("ProductName\tGoogle Chrome\n")
	require.ErrorIs(t, err, errNoProductVersion)
}

// TestReadApplicationVersion reads [App] Version from an extracted tree.
func TestReadApplicationVersion(t *testing.T) {
	t.Parallel()

	extractDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(extractDir, "core"), 0o755))

	appINI := "[App]\nVendor=Mozilla\nName=Firefox\nVersion=114.0.2\n"
	require.NoError(t, os.WriteFile(filepath.Join(extractDir, "core", "application.ini"), []byte(appINI), 0o644))

	got, err := readApplicationVersion(extractDir)
	require.NoError(t, err)
	require.Equal(t, "114.0.2", got)

	_, err = readApplicationVersion(t.TempDir())
	require.Error(t, err)
}
