package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jaydifryah/UpdateBrowsers/internal/config"
	"github.com/jaydifryah/UpdateBrowsers/internal/domain/update"
	"github.com/jaydifryah/UpdateBrowsers/internal/logger"
)

var (
	errBadHTTPStatus      = errors.New("unexpected http status")
	errNoDownloadURL      = errors.New("no download URL for product")
	errVersionUnparsable  = errors.New("installer version is not a dotted numeric version")
	errNoProberForProduct = errors.New("no version prober for product")
)

// VersionProber derives the version embedded in a downloaded installer.
type VersionProber interface {
	ProbeVersion(ctx context.Context, installerPath string) (string, error)
}

// Fetcher downloads installer artifacts into the local staging directory.
type Fetcher struct {
	cfg     *config.Config
	client  *http.Client
	probers map[update.Product]VersionProber
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithProber replaces the version prober for a product, mainly for tests.
func WithProber(product update.Product, prober VersionProber) Option {
	return func(f *Fetcher) {
		f.probers[product] = prober
	}
}

// New builds a Fetcher with the production probers: msitools for the
// Chrome MSI, 7-Zip plus application.ini for the Firefox installer.
func New(cfg *config.Config, opts ...Option) *Fetcher {
	f := &Fetcher{
		cfg:    cfg,
		client: http.DefaultClient,
		probers: map[update.Product]VersionProber{
			update.ProductChrome:  &msiProber{msiinfoPath: cfg.MsiinfoPath},
			update.ProductFirefox: &sfxProber{sevenZipPath: cfg.SevenZipPath},
		},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch downloads the product's latest installer to its well-known path in
// the staging directory, overwriting any stale artifact from a previous
// run, and probes its embedded version. Exactly one Fetch happens per
// batch; the returned artifact is shared read-only by all workers.
func (f *Fetcher) Fetch(ctx context.Context, product update.Product) (*update.Artifact, error) {
	sourceURL := f.cfg.DownloadURL(product)
	if sourceURL == "" {
		return nil, fmt.Errorf("%w: %s", errNoDownloadURL, product)
	}

	if err := os.MkdirAll(f.cfg.StagingDir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}

	localPath := filepath.Join(f.cfg.StagingDir, product.InstallerFilename())

	logger.InfoKV(ctx, "Downloading installer", "product", product, "url", sourceURL)

	if err := f.download(ctx, sourceURL, localPath); err != nil {
		return nil, fmt.Errorf("download installer: %w", err)
	}

	prober, ok := f.probers[product]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errNoProberForProduct, product)
	}

	raw, err := prober.ProbeVersion(ctx, localPath)
	if err != nil {
		return nil, fmt.Errorf("probe installer version: %w", err)
	}

	parsed := update.ParseVersion(raw)
	if !parsed.Valid() {
		return nil, fmt.Errorf("%w: %q", errVersionUnparsable, raw)
	}

	logger.InfoKV(ctx, "Installer ready", "product", product, "version", parsed)

	return &update.Artifact{
		Product:   product,
		SourceURL: sourceURL,
		LocalPath: localPath,
		Version:   parsed,
	}, nil
}

// download streams the endpoint body to path. os.Create truncates, so a
// leftover artifact at the same path is overwritten, never appended to.
func (f *Fetcher) download(ctx context.Context, sourceURL, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, http.NoBody)
	if err != nil {
		return err
	}

	response, err := f.client.Do(req)
	if err != nil {
		return err
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%s, %s: %w", sourceURL, response.Status, errBadHTTPStatus)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, response.Body); err != nil {
		_ = out.Close()

		return err
	}

	return out.Close()
}
