package session

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"

	"github.com/hostsnap/hostsnap/pkg/defaults"
	"github.com/hostsnap/hostsnap/pkg/errors"
)

// SSHSession executes commands on a remote host. The TCP connection is
// established once; every command runs in a fresh remote session on it.
type SSHSession struct {
	client *ssh.Client
}

// NewSSHSession dials the target described by cfg. The configured timeout
// applies at connection establishment only, not per command.
func NewSSHSession(cfg Config) (*SSHSession, error) {
	user := cfg.Username
	if user == "" {
		user = defaults.Username
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaults.ConnectTimeout
	}

	auths, err := authMethods(cfg.KeyPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConnection, "failed to prepare authentication", err)
	}

	clientCfg := &ssh.ClientConfig{
		User:            user,
		Auth:            auths,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // fixture collection targets are operator-controlled
		Timeout:         timeout,
	}

	addr := net.JoinHostPort(cfg.Hostname, fmt.Sprintf("%d", defaults.SSHPort))
	client, err := ssh.Dial("tcp", addr, clientCfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConnection,
			fmt.Sprintf("failed to connect to %s as %s", addr, user), err)
	}

	return &SSHSession{client: client}, nil
}

// Run executes the command in a new remote session and buffers both output
// streams. The call blocks until the remote process terminates or the
// context is canceled; cancellation tears the remote session down and
// surfaces as an INTERRUPTED error wrapping the context error.
func (s *SSHSession) Run(ctx context.Context, command string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInterrupted,
			fmt.Sprintf("command %q canceled", command), err)
	}

	sess, err := s.client.NewSession()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConnection, "failed to open remote session", err)
	}
	defer sess.Close()

	var stdout, stderr bytes.Buffer
	sess.Stdout = &stdout
	sess.Stderr = &stderr

	finished := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			// Many servers ignore signal requests, so close the channel
			// too; either way sess.Run unblocks.
			_ = sess.Signal(ssh.SIGKILL)
			sess.Close()
		case <-finished:
		}
	}()

	err = sess.Run(command)
	close(finished)

	res := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Wrap(errors.ErrCodeInterrupted,
				fmt.Sprintf("command %q canceled", command), ctxErr)
		}
		var exitErr *ssh.ExitError
		if !stderrors.As(err, &exitErr) {
			return nil, errors.Wrap(errors.ErrCodeConnection,
				fmt.Sprintf("remote execution of %q failed", command), err)
		}
		res.ExitCode = exitErr.ExitStatus()
	}

	return res, nil
}

// RunVerified executes the command and fails on a non-zero exit code.
func (s *SSHSession) RunVerified(ctx context.Context, command string) (*Result, error) {
	res, err := s.Run(ctx, command)
	if err != nil {
		return nil, err
	}
	return verify(command, res)
}

// Close terminates the SSH connection.
func (s *SSHSession) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// authMethods assembles SSH authentication methods: the given private key
// (or one discovered from the standard locations), plus the SSH agent when
// available.
func authMethods(keyPath string) ([]ssh.AuthMethod, error) {
	var auths []ssh.AuthMethod

	path := keyPath
	if path == "" {
		path = discoverKey()
	}
	if path != "" {
		signer, err := loadSigner(path)
		if err != nil {
			return nil, err
		}
		auths = append(auths, ssh.PublicKeys(signer))
	}

	if sock := os.Getenv("SSH_AUTH_SOCK"); sock != "" {
		if conn, err := net.Dial("unix", sock); err == nil {
			auths = append(auths, ssh.PublicKeysCallback(agent.NewClient(conn).Signers))
		}
	}

	if len(auths) == 0 {
		return nil, fmt.Errorf("no usable private key found and no SSH agent available")
	}
	return auths, nil
}

// discoverKey probes the standard private-key locations and returns the
// first one that exists, or empty.
func discoverKey() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	for _, rel := range defaults.KeySearchPaths {
		path := filepath.Join(home, rel)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadSigner parses an unencrypted private key file.
func loadSigner(path string) (ssh.Signer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key %s: %w", path, err)
	}
	signer, err := ssh.ParsePrivateKey(data)
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if stderrors.As(err, &missing) {
			return nil, fmt.Errorf("private key %s is encrypted; use an unencrypted key or the SSH agent", path)
		}
		return nil, fmt.Errorf("failed to parse private key %s: %w", path, err)
	}
	return signer, nil
}
