package sshexec

import (
	"context"
	"fmt"
	"log/slog"
)

// Executor runs commands on remote hosts, opening a connection per command
// unless the caller supplies a shared Session.
type Executor struct {
	dialer Dialer
	logger *slog.Logger
}

// New creates an Executor that connects through the given dialer.
func New(dialer Dialer, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{dialer: dialer, logger: logger}
}

// Connect opens a new session to the host at addr. The caller owns the
// session and must close it.
func (e *Executor) Connect(ctx context.Context, addr string) (Session, error) {
	sess, err := e.dialer.Dial(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return sess, nil
}

// Run executes a command and returns its output. If opts.Session is nil, a
// new session is opened to opts.Addr and closed before returning, on both
// success and failure paths. Exit codes are reported, not interpreted.
func (e *Executor) Run(ctx context.Context, command string, opts RunOptions) (*Result, error) {
	sess := opts.Session
	if sess == nil {
		var err error
		sess, err = e.Connect(ctx, opts.Addr)
		if err != nil {
			return nil, err
		}
		defer sess.Close() //nolint:errcheck // connection teardown is best-effort
	}

	res, err := sess.Exec(ctx, command)
	if err != nil {
		return nil, fmt.Errorf("exec %q: %w", command, err)
	}

	if opts.LogOutput {
		e.logger.Info("remote command finished", "command", command, "exit", res.ExitCode)
		if len(res.Stdout) > 0 {
			e.logger.Debug("remote stdout", "command", command, "output", string(res.Stdout))
		}
		if len(res.Stderr) > 0 {
			e.logger.Debug("remote stderr", "command", command, "output", string(res.Stderr))
		}
	}

	if opts.Output != nil {
		_, _ = opts.Output.Write(res.Stdout) //nolint:errcheck // raw log copy is best-effort
		_, _ = opts.Output.Write(res.Stderr) //nolint:errcheck // raw log copy is best-effort
	}

	return res, nil
}
