package update

import (
	"errors"
	"fmt"
	"strings"
)

// Product identifies which browser a target is being updated to.
type Product string

const (
	// ProductChrome is Google Chrome, distributed as an enterprise MSI.
	ProductChrome Product = "chrome"
	// ProductFirefox is Mozilla Firefox, distributed as a self-extracting installer.
	ProductFirefox Product = "firefox"
)

var errUnknownProduct = errors.New("unknown product")

// ParseProduct converts CLI input into a Product.
func ParseProduct(s string) (Product, error) {
	switch Product(strings.ToLower(strings.TrimSpace(s))) {
	case ProductChrome:
		return ProductChrome, nil
	case ProductFirefox:
		return ProductFirefox, nil
	default:
		return "", fmt.Errorf("%w: %q", errUnknownProduct, s)
	}
}

// DefaultDownloadURL returns the vendor's "latest" endpoint for the product.
func (p Product) DefaultDownloadURL() string {
	switch p {
	case ProductChrome:
		return "https://dl.google.com/chrome/install/googlechromestandaloneenterprise64.msi"
	case ProductFirefox:
		return "https://download.mozilla.org/?product=firefox-latest-ssl&os=win64&lang=en-US"
	default:
		return ""
	}
}

// InstallerFilename returns the well-known local and staged filename of the
// installer artifact. A fixed name lets a fresh download overwrite whatever
// a previous run left behind.
func (p Product) InstallerFilename() string {
	switch p {
	case ProductChrome:
		return "googlechromestandaloneenterprise64.msi"
	case ProductFirefox:
		return "firefox-latest-installer.exe"
	default:
		return ""
	}
}

// InstallCommand returns the silent, no-restart install invocation for an
// installer staged at path on the target. The command must be waited on
// synchronously before the post-install version is probed.
func (p Product) InstallCommand(path string) (name string, args []string) {
	switch p {
	case ProductChrome:
		return "msiexec", []string{"/i", path, "/qn", "/norestart"}
	case ProductFirefox:
		return path, []string{"-ms"}
	default:
		return "", nil
	}
}

// ProcessName returns the base process name of the running browser,
// without a platform-specific extension.
func (p Product) ProcessName() string {
	switch p {
	case ProductChrome:
		return "chrome"
	case ProductFirefox:
		return "firefox"
	default:
		return ""
	}
}

// WindowsExecutablePath returns the default install location of the browser
// binary on a Windows host, used for version probing.
func (p Product) WindowsExecutablePath() string {
	switch p {
	case ProductChrome:
		return `C:\Program Files\Google\Chrome\Application\chrome.exe`
	case ProductFirefox:
		return `C:\Program Files\Mozilla Firefox\firefox.exe`
	default:
		return ""
	}
}

// PosixCommand returns the command name that reports the browser version
// on a POSIX host when invoked with --version.
func (p Product) PosixCommand() string {
	switch p {
	case ProductChrome:
		return "google-chrome"
	case ProductFirefox:
		return "firefox"
	default:
		return ""
	}
}
