package selfupdate

import (
	"context"
	"crypto"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/jaydifryah/UpdateBrowsers/internal/logger"

	// Registers the hash implementation behind checksumFunction.
	_ "crypto/sha512"
)

const (
	// checksumFunction is used to verify the downloaded binary.
	checksumFunction crypto.Hash = crypto.SHA512
	// binaryFileMode is applied to the replaced executable.
	binaryFileMode os.FileMode = 0o755

	downloadTimeout = 5 * time.Minute
)

var (
	errEmptyURL         = errors.New("update URL is empty")
	errBadHTTPStatus    = errors.New("unexpected HTTP status")
	errEmptyChecksum    = errors.New("checksum file is empty")
	errChecksumTooShort = errors.New("checksum is not a full digest")
)

// Options configures a self-update run.
type Options struct {
	// URL points at the replacement binary for this platform.
	URL string
	// ChecksumURL points at the binary's hex digest. Defaults to
	// URL + ".sha512".
	ChecksumURL string
}

// Run downloads the published binary, verifies its digest and swaps it
// in over the running executable.
func Run(ctx context.Context, opts *Options) error {
	if opts == nil || opts.URL == "" {
		return errEmptyURL
	}

	checksumURL := opts.ChecksumURL
	if checksumURL == "" {
		checksumURL = opts.URL + ".sha512"
	}

	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	logger.InfoKV(ctx, "Downloading checksum", "url", checksumURL)

	checksumBody, err := download(ctx, checksumURL)
	if err != nil {
		return fmt.Errorf("download checksum: %w", err)
	}

	checksum, err := parseChecksum(checksumBody)
	if err != nil {
		return fmt.Errorf("parse checksum: %w", err)
	}

	logger.InfoKV(ctx, "Downloading binary", "url", opts.URL)

	binary, err := download(ctx, opts.URL)
	if err != nil {
		return fmt.Errorf("download binary: %w", err)
	}

	logger.Info(ctx, "Applying update")

	options := goupdate.Options{
		TargetMode: binaryFileMode,
		Checksum:   checksum,
		Hash:       checksumFunction,
	}

	if err = goupdate.Apply(strings.NewReader(binary), options); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	logger.Info(ctx, "Update applied, restart to pick up the new binary")

	return nil
}

func download(ctx context.Context, url string) (string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", err
	}

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return "", err
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: %w %d", url, errBadHTTPStatus, response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// parseChecksum reads the digest from a checksum file in the usual
// "<hex>  <filename>" shape, tolerating a bare digest too.
func parseChecksum(contents string) ([]byte, error) {
	fields := strings.Fields(contents)
	if len(fields) == 0 {
		return nil, errEmptyChecksum
	}

	checksum, err := hex.DecodeString(fields[0])
	if err != nil {
		return nil, err
	}

	if len(checksum) != checksumFunction.Size() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d",
			errChecksumTooShort, len(checksum), checksumFunction.Size())
	}

	return checksum, nil
}
