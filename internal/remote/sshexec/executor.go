package sshexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/jaydifryah/UpdateBrowsers/internal/remote"
)

// Shell flavors for translating probes into remote invocations.
const (
	ShellPowerShell = "powershell"
	ShellPosix      = "posix"
)

const defaultScpMode = "C0644"

var (
	errNoAuthMethod = errors.New("ssh: no authentication method configured")
	errUnknownKind  = errors.New("ssh: unknown command kind")
)

// Config carries the per-fleet SSH access settings.
type Config struct {
	// User is the remote account.
	User string
	// Password authenticates when no key file is set.
	Password string
	// KeyFile is a PEM-encoded private key path.
	KeyFile string
	// Port is the SSH port on fleet hosts.
	Port int
	// Shell is ShellPowerShell or ShellPosix.
	Shell string
	// ConnectTimeout bounds reaching a single host.
	ConnectTimeout time.Duration
}

// Executor reaches fleet hosts over SSH, one session per operation.
type Executor struct {
	cfg  Config
	auth []ssh.AuthMethod
}

// New builds an Executor, loading the private key up front so a bad key
// fails the run before any host is contacted.
func New(cfg Config) (*Executor, error) {
	var auth []ssh.AuthMethod

	if cfg.KeyFile != "" {
		pem, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("read key file: %w", err)
		}

		signer, err := ssh.ParsePrivateKey(pem)
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}

		auth = append(auth, ssh.PublicKeys(signer))
	}

	if cfg.Password != "" {
		auth = append(auth, ssh.Password(cfg.Password))
	}

	if len(auth) == 0 {
		return nil, errNoAuthMethod
	}

	return &Executor{cfg: cfg, auth: auth}, nil
}

// Execute runs a typed command on the host.
func (e *Executor) Execute(ctx context.Context, host string, cmd remote.Command) (*remote.CommandResult, error) {
	client, err := e.dial(ctx, host)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = client.Close()
	}()

	switch cmd.Kind {
	case remote.CommandStageFile:
		return e.stageFile(ctx, client, cmd)
	case remote.CommandRunInstaller:
		return e.run(ctx, client, buildCommandLine(cmd.Name, cmd.Args), nil)
	case remote.CommandRemoveFile:
		return e.run(ctx, client, removeFileCommand(e.cfg.Shell, cmd.Path), nil)
	default:
		return nil, fmt.Errorf("%w: %d", errUnknownKind, cmd.Kind)
	}
}

// Probe answers a typed question about host state. A probe that reaches
// the host but finds nothing (product absent, process not running) is a
// soft result, not an error.
func (e *Executor) Probe(ctx context.Context, host string, probe remote.Probe) (*remote.ProbeResult, error) {
	client, err := e.dial(ctx, host)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = client.Close()
	}()

	switch probe.Kind {
	case remote.ProbeInstalledVersion:
		res, err := e.run(ctx, client, installedVersionCommand(e.cfg.Shell, probe.Product), nil)
		if err != nil {
			return nil, err
		}

		return &remote.ProbeResult{Version: extractVersion(res.Output)}, nil
	case remote.ProbeProcessRunning:
		res, err := e.run(ctx, client, processRunningCommand(e.cfg.Shell, probe.Product), nil)
		if err != nil {
			return nil, err
		}

		return &remote.ProbeResult{Running: parseRunningOutput(e.cfg.Shell, res)}, nil
	default:
		return nil, fmt.Errorf("%w: probe %d", errUnknownKind, probe.Kind)
	}
}

// dial opens an SSH connection to the host, classifying any failure on
// the way as a connectivity error.
func (e *Executor) dial(ctx context.Context, host string) (*ssh.Client, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(e.cfg.Port))

	dialer := &net.Dialer{Timeout: e.cfg.ConnectTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &remote.ConnectivityError{Host: host, Err: err}
	}

	//nolint:gosec // Fleet hosts are provisioned machines; host key pinning is out of scope.
	clientConfig := &ssh.ClientConfig{
		User:            e.cfg.User,
		Auth:            e.auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         e.cfg.ConnectTimeout,
	}

	sshConn, channels, requests, err := ssh.NewClientConn(conn, addr, clientConfig)
	if err != nil {
		_ = conn.Close()

		return nil, &remote.ConnectivityError{Host: host, Err: err}
	}

	return ssh.NewClient(sshConn, channels, requests), nil
}

// run executes a command line in a fresh session and waits for it,
// honoring context cancellation.
func (e *Executor) run(ctx context.Context, client *ssh.Client, line string, stdin func(*ssh.Session) error) (*remote.CommandResult, error) {
	session, err := client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	defer func() {
		_ = session.Close()
	}()

	var output bytes.Buffer
	session.Stdout = &output
	session.Stderr = &output

	if stdin != nil {
		if err = stdin(session); err != nil {
			return nil, err
		}
	}

	if err = session.Start(line); err != nil {
		return nil, fmt.Errorf("start %q: %w", line, err)
	}

	done := make(chan error, 1)

	go func() {
		done <- session.Wait()
	}()

	select {
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)

		return nil, ctx.Err()
	case err = <-done:
		result := &remote.CommandResult{Output: output.String()}

		var exitError *ssh.ExitError
		if errors.As(err, &exitError) {
			result.ExitCode = exitError.ExitStatus()
			return result, nil
		}

		if err != nil {
			return nil, fmt.Errorf("run %q: %w", line, err)
		}

		return result, nil
	}
}

// stageFile writes the payload through the remote scp sink, which both
// Windows OpenSSH and POSIX hosts provide, so no extra protocol is needed.
func (e *Executor) stageFile(ctx context.Context, client *ssh.Client, cmd remote.Command) (*remote.CommandResult, error) {
	dir, name := splitRemotePath(cmd.Path)

	feed := func(session *ssh.Session) error {
		pipe, err := session.StdinPipe()
		if err != nil {
			return fmt.Errorf("stdin pipe: %w", err)
		}

		go func() {
			defer func() {
				_ = pipe.Close()
			}()

			if _, err := fmt.Fprintf(pipe, "%s %d %s\n", defaultScpMode, cmd.Size, name); err != nil {
				return
			}

			if _, err := io.CopyN(pipe, cmd.Payload, cmd.Size); err != nil {
				return
			}

			_, _ = pipe.Write([]byte{0})
		}()

		return nil
	}

	return e.run(ctx, client, "scp -t "+quoteArg(dir), feed)
}
