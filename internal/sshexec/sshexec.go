// Package sshexec provides an abstraction over executing commands on a
// remote host over SSH.
package sshexec

import (
	"context"
	"io"
)

// Result holds the output from a completed remote command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Session is an authenticated connection to a remote host over which
// commands can be executed. A Session may run any number of commands;
// closing it releases the underlying connection.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/session.go . Session
type Session interface {
	// Exec runs a single command and returns its output. A non-zero exit
	// status is reported in the Result, not as an error; errors are
	// reserved for transport failures.
	Exec(ctx context.Context, command string) (*Result, error)

	// Close releases the connection.
	Close() error
}

// Dialer establishes authenticated sessions to remote hosts.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/dialer.go . Dialer
type Dialer interface {
	// Dial connects and authenticates to the host at addr.
	Dial(ctx context.Context, addr string) (Session, error)
}

// RunOptions configures a single command execution.
type RunOptions struct {
	// Addr is the host to connect to when no Session is supplied.
	Addr string

	// Session, when set, is reused for the command instead of opening a
	// new connection. Its lifecycle stays with the caller; Run will not
	// close it.
	Session Session

	// LogOutput emits the command's stdout/stderr to the operational log.
	// It has no effect on the returned Result.
	LogOutput bool

	// Output, when set, additionally receives the raw command output.
	Output io.Writer
}
