package sshexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"
)

// defaultConnectTimeout bounds the TCP and SSH handshakes.
const defaultConnectTimeout = 15 * time.Second

// ClientConfig configures SSH authentication for remote hosts.
type ClientConfig struct {
	User           string
	KeyPath        string        // path to the private key file
	Port           int           // 0 means 22
	ConnectTimeout time.Duration // 0 means defaultConnectTimeout
}

// sshDialer implements Dialer using golang.org/x/crypto/ssh.
type sshDialer struct {
	cfg    ClientConfig
	signer ssh.Signer
}

// NewDialer creates a Dialer authenticating with the configured private key.
func NewDialer(cfg ClientConfig) (Dialer, error) {
	key, err := os.ReadFile(cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	return &sshDialer{cfg: cfg, signer: signer}, nil
}

// Dial connects and authenticates to the host at addr.
func (d *sshDialer) Dial(ctx context.Context, addr string) (Session, error) {
	port := d.cfg.Port
	if port == 0 {
		port = 22
	}
	timeout := d.cfg.ConnectTimeout
	if timeout == 0 {
		timeout = defaultConnectTimeout
	}
	hostport := net.JoinHostPort(addr, strconv.Itoa(port))

	conn, err := (&net.Dialer{Timeout: timeout}).DialContext(ctx, "tcp", hostport)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	clientConfig := &ssh.ClientConfig{
		User: d.cfg.User,
		Auth: []ssh.AuthMethod{ssh.PublicKeys(d.signer)},
		// Freshly created droplets have host keys we have never seen.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // no prior host key exists for a new droplet
		Timeout:         timeout,
	}

	cc, chans, reqs, err := ssh.NewClientConn(conn, hostport, clientConfig)
	if err != nil {
		_ = conn.Close() //nolint:errcheck // handshake failed, connection is dead
		return nil, fmt.Errorf("ssh handshake: %w", err)
	}

	return &sshSession{client: ssh.NewClient(cc, chans, reqs)}, nil
}

// sshSession implements Session over an established SSH client connection.
// Each Exec opens a fresh channel on the shared connection, so the
// authentication handshake is paid once per session, not per command.
type sshSession struct {
	client *ssh.Client
}

func (s *sshSession) Exec(ctx context.Context, command string) (*Result, error) {
	run, err := s.client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	defer run.Close() //nolint:errcheck // channel teardown is best-effort

	var stdout, stderr bytes.Buffer
	run.Stdout = &stdout
	run.Stderr = &stderr

	errCh := make(chan error, 1)
	go func() { errCh <- run.Run(command) }()

	select {
	case <-ctx.Done():
		_ = run.Signal(ssh.SIGKILL) //nolint:errcheck // best-effort kill on cancellation
		return nil, ctx.Err()
	case err = <-errCh:
	}

	res := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			// Non-zero exit is a command result, not a transport failure.
			res.ExitCode = exitErr.ExitStatus()
			return res, nil
		}
		return nil, fmt.Errorf("run: %w", err)
	}

	return res, nil
}

func (s *sshSession) Close() error {
	return s.client.Close()
}
