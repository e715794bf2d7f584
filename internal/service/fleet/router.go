package fleet

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jaydifryah/UpdateBrowsers/internal/config"
	"github.com/jaydifryah/UpdateBrowsers/internal/remote"
	"github.com/jaydifryah/UpdateBrowsers/internal/remote/localexec"
	"github.com/jaydifryah/UpdateBrowsers/internal/remote/sshexec"
)

// newExecutor builds the transport for a batch: SSH for fleet hosts,
// direct execution for targets naming this machine. SSH credentials are
// only required when the target list actually contains a remote host.
func newExecutor(cfg *config.Config, hosts []string) (remote.Executor, error) {
	r := &router{local: localexec.New()}

	needSSH := false

	for _, host := range hosts {
		if !isLocalHost(host) {
			needSSH = true
			break
		}
	}

	if !needSSH {
		return r, nil
	}

	sshExecutor, err := sshexec.New(sshexec.Config{
		User:           cfg.SSH.User,
		Password:       cfg.SSH.Password,
		KeyFile:        cfg.SSH.KeyFile,
		Port:           cfg.SSH.Port,
		Shell:          cfg.SSH.Shell,
		ConnectTimeout: cfg.SSH.ConnectTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("configure ssh executor: %w", err)
	}

	r.ssh = sshExecutor

	return r, nil
}

// router dispatches operations to the local or SSH executor per host.
type router struct {
	local remote.Executor
	ssh   remote.Executor
}

func (r *router) Execute(ctx context.Context, host string, cmd remote.Command) (*remote.CommandResult, error) {
	return r.pick(host).Execute(ctx, host, cmd)
}

func (r *router) Probe(ctx context.Context, host string, probe remote.Probe) (*remote.ProbeResult, error) {
	return r.pick(host).Probe(ctx, host, probe)
}

func (r *router) pick(host string) remote.Executor {
	if isLocalHost(host) || r.ssh == nil {
		return r.local
	}

	return r.ssh
}

// isLocalHost reports whether a target identifier names this machine.
func isLocalHost(host string) bool {
	switch strings.ToLower(host) {
	case "localhost", "127.0.0.1", "::1":
		return true
	}

	hostname, err := os.Hostname()

	return err == nil && strings.EqualFold(host, hostname)
}
