package fleet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	errNoTargets      = errors.New("no target host provided")
	errEmptyHostsFile = errors.New("hosts file contains no host identifiers")
)

// LoadTargets resolves the CLI target argument into a host list: when the
// argument names an existing file it is read as newline-delimited host
// identifiers (blank lines and #-comments skipped), otherwise the
// argument itself is the single host. A single host is just a batch of
// size one.
func LoadTargets(arg string) ([]string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, errNoTargets
	}

	info, err := os.Stat(arg)
	if err != nil || info.IsDir() {
		return []string{arg}, nil
	}

	contents, err := os.ReadFile(filepath.Clean(arg))
	if err != nil {
		return nil, fmt.Errorf("read hosts file: %w", err)
	}

	var hosts []string

	for _, line := range strings.Split(string(contents), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		hosts = append(hosts, line)
	}

	if len(hosts) == 0 {
		return nil, fmt.Errorf("%s: %w", arg, errEmptyHostsFile)
	}

	return hosts, nil
}
