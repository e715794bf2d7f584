package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jaydifryah/UpdateBrowsers/internal/domain/update"
)

// SSH holds the access settings the SSH executor uses to reach fleet hosts.
type SSH struct {
	// User is the account used for remote sessions.
	User string `yaml:"user"`
	// Password authenticates the session when no key file is configured.
	Password string `yaml:"password"`
	// KeyFile is the path to a PEM-encoded private key.
	KeyFile string `yaml:"key_file"`
	// Port is the SSH port on fleet hosts.
	Port int `yaml:"port"`
	// Shell selects how probes are phrased on the remote side.
	Shell string `yaml:"shell"`
	// ConnectTimeout bounds the TCP/SSH handshake per host.
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// ProductSettings overrides per-product defaults.
type ProductSettings struct {
	// DownloadURL replaces the vendor's default "latest" endpoint.
	DownloadURL string `yaml:"download_url"`
}

// Config holds everything a batch run needs beyond its CLI arguments.
type Config struct {
	// Products maps product names to their overrides.
	Products map[string]ProductSettings `yaml:"products"`
	// SSH configures remote access to fleet hosts.
	SSH SSH `yaml:"ssh"`
	// Concurrency caps the number of in-flight host workers.
	Concurrency int `yaml:"concurrency"`
	// Timeout bounds each remote operation (staging, install, probe).
	Timeout time.Duration `yaml:"timeout"`
	// StagingDir is where installer artifacts are downloaded locally.
	StagingDir string `yaml:"staging_dir"`
	// RemoteStagingDir is where installers are staged on fleet hosts.
	RemoteStagingDir string `yaml:"remote_staging_dir"`
	// SevenZipPath locates the 7-Zip binary used to open the Firefox
	// self-extracting installer.
	SevenZipPath string `yaml:"seven_zip_path"`
	// MsiinfoPath locates the msitools binary used to read the Chrome
	// MSI version property.
	MsiinfoPath string `yaml:"msiinfo_path"`
}

const (
	// DefaultConfigFilename is the default filename for updater settings.
	DefaultConfigFilename = "browser-updater-settings.yaml"

	// DefaultConcurrency is the fleet-wide cap on in-flight host workers.
	DefaultConcurrency = 16

	// DefaultTimeout is the default bound on a single remote operation.
	// Installs dominate, so it is generous.
	DefaultTimeout = 5 * time.Minute

	// DefaultConnectTimeout is the default bound on reaching one host.
	DefaultConnectTimeout = 15 * time.Second

	// DefaultSSHPort is the default SSH port on fleet hosts.
	DefaultSSHPort = 22

	// DefaultRemoteStagingDir is where installers land on Windows fleet hosts.
	DefaultRemoteStagingDir = `C:\Windows\Temp`

	// ShellPowerShell phrases remote probes as PowerShell one-liners.
	ShellPowerShell = "powershell"
	// ShellPosix phrases remote probes with POSIX tooling.
	ShellPosix = "posix"
)

var (
	// errUnknownShell is returned for a shell value other than the two supported.
	errUnknownShell = errors.New("ssh shell must be \"powershell\" or \"posix\"")
	// errNegativeConcurrency is returned when the worker cap is below zero.
	errNegativeConcurrency = errors.New("concurrency must not be negative")
)

// Default returns a Config with every field at its default, usable without
// any settings file at all.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// Load reads configuration from the provided path, validates it and fills
// in defaults. An empty path means the default filename; when the path
// names the default file and it is absent, Load simply yields Default()
// so the tool works out of the box. A missing file at any other path is
// an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	usingDefault := path == DefaultConfigFilename

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if usingDefault && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the provided settings for well-formedness and fills in
// defaults for anything left unset.
func Validate(cfg *Config) error {
	if cfg.Concurrency < 0 {
		return errNegativeConcurrency
	}

	for name, product := range cfg.Products {
		if _, err := update.ParseProduct(name); err != nil {
			return err
		}

		if product.DownloadURL == "" {
			continue
		}

		if _, err := url.ParseRequestURI(product.DownloadURL); err != nil {
			return fmt.Errorf("invalid download URL for %s: %w", name, err)
		}
	}

	switch cfg.SSH.Shell {
	case "", ShellPowerShell, ShellPosix:
	default:
		return errUnknownShell
	}

	applyDefaults(cfg)

	return nil
}

// DownloadURL returns the configured endpoint for a product, falling back
// to the vendor default.
func (c *Config) DownloadURL(product update.Product) string {
	if settings, ok := c.Products[string(product)]; ok && settings.DownloadURL != "" {
		return settings.DownloadURL
	}

	return product.DefaultDownloadURL()
}

func applyDefaults(cfg *Config) {
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.StagingDir == "" {
		cfg.StagingDir = filepath.Join(os.TempDir(), "browser-updater")
	}

	if cfg.RemoteStagingDir == "" {
		cfg.RemoteStagingDir = DefaultRemoteStagingDir
	}

	if cfg.SevenZipPath == "" {
		cfg.SevenZipPath = "7z"
	}

	if cfg.MsiinfoPath == "" {
		cfg.MsiinfoPath = "msiinfo"
	}

	if cfg.SSH.Port == 0 {
		cfg.SSH.Port = DefaultSSHPort
	}

	if cfg.SSH.Shell == "" {
		cfg.SSH.Shell = ShellPowerShell
	}

	if cfg.SSH.ConnectTimeout <= 0 {
		cfg.SSH.ConnectTimeout = DefaultConnectTimeout
	}
}
