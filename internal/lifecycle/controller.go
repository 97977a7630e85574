package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/wardenlabs/warden/internal/cloud"
	"github.com/wardenlabs/warden/internal/sshexec"
)

// defaultPollInterval is the delay between droplet readiness checks.
const defaultPollInterval = 5 * time.Second

// Sentinel errors for guard rejections and lifecycle failures.
var (
	// ErrNotDown rejects CreateServer while a droplet already exists.
	ErrNotDown = errors.New("server is not down")

	// ErrNotRunning rejects StopServer when there is nothing to stop.
	ErrNotRunning = errors.New("no running server to stop")

	// ErrBootTimeout reports a droplet that never became active.
	ErrBootTimeout = errors.New("droplet did not become active before the boot timeout")

	// ErrPollAbandoned reports a boot cycle cut short because the state
	// was changed externally (typically a forced state).
	ErrPollAbandoned = errors.New("boot cycle abandoned: state changed externally")
)

// ProvisionError describes a provisioning script command that failed after
// the droplet became network-reachable.
type ProvisionError struct {
	Command string
	Err     error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("provision command %q: %v", e.Command, e.Err)
}

func (e *ProvisionError) Unwrap() error {
	return e.Err
}

// EventSink receives lifecycle transition notifications. Implementations
// must not block.
type EventSink interface {
	StateChanged(ctx context.Context, from, to State, status Status)
}

// Executor is the surface the controller needs from the remote command
// executor.
type Executor interface {
	Run(ctx context.Context, command string, opts sshexec.RunOptions) (*sshexec.Result, error)
	Connect(ctx context.Context, addr string) (sshexec.Session, error)
}

// ProvisionLogOpener opens the raw provision output log for a droplet.
type ProvisionLogOpener interface {
	OpenProvisionLog(dropletID int) (io.WriteCloser, error)
}

// Config configures the Controller.
type Config struct {
	// Script is the ordered list of provisioning commands, run over one
	// shared session against a freshly booted droplet.
	Script []string

	// StopCommand gracefully stops the hosted service before teardown.
	// Best-effort: a failure is logged and the droplet deleted regardless.
	StopCommand string

	// PollInterval is the delay between droplet readiness checks.
	PollInterval time.Duration

	// BootTimeout bounds how long the poll loop waits for the droplet to
	// become active. Zero polls forever.
	BootTimeout time.Duration

	// Logger receives operational logs. Nil discards them.
	Logger *slog.Logger

	// Events, when set, is notified of every state transition.
	Events EventSink

	// Clock drives the poll loop. Nil uses real time.
	Clock Clock

	// ProvisionLogs, when set, captures raw provisioning output per droplet.
	ProvisionLogs ProvisionLogOpener
}

// Controller owns the single in-memory lifecycle state machine. Its state
// field is the sole source of truth: there is no persistence, so a process
// restart always resets to down even if a real droplet is still running.
type Controller struct {
	provider cloud.Provider
	exec     Executor
	cfg      Config
	logger   *slog.Logger
	clock    Clock

	mu        sync.Mutex
	state     State
	dropletID int
	address   string
}

// New creates a Controller in the down state.
func New(provider cloud.Provider, exec Executor, cfg Config) *Controller {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}

	return &Controller{
		provider: provider,
		exec:     exec,
		cfg:      cfg,
		logger:   logger,
		clock:    clock,
		state:    StateDown,
	}
}

// Status returns a snapshot of the controller's view. Safe to call from any
// state and concurrently with any transition.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// CreateServer requests a new droplet and begins the boot poll loop.
// Rejected with ErrNotDown unless the current state is down. The returned
// channel receives exactly one value when the cycle resolves: nil once the
// server is up, or the error that ended the cycle.
func (c *Controller) CreateServer(ctx context.Context) (<-chan error, error) {
	if !c.casState(ctx, StateDown, StateStarting, nil) {
		return nil, fmt.Errorf("%w (state: %s)", ErrNotDown, c.Status().State)
	}

	drop, err := c.provider.Create(ctx)
	if err != nil {
		// The only fully unwound failure: no droplet handle exists yet.
		// CAS so a concurrent ForceState is not clobbered back to down.
		c.casState(ctx, StateStarting, StateDown, func() {
			c.dropletID = 0
			c.address = ""
		})
		return nil, fmt.Errorf("create droplet: %w", err)
	}

	c.mu.Lock()
	c.dropletID = drop.ID
	c.mu.Unlock()
	c.logger.Info("droplet requested", "droplet_id", drop.ID, "name", drop.Name)

	done := make(chan error, 1)
	go c.waitForBoot(ctx, drop.ID, done)
	return done, nil
}

// StopServer tears down the droplet. Accepted from up or weird; tearing
// down a weird droplet is the designed recovery path.
func (c *Controller) StopServer(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateUp && c.state != StateWeird {
		st := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w (state: %s)", ErrNotRunning, st)
	}
	from := c.state
	c.state = StateStopping
	id := c.dropletID
	addr := c.address
	st := c.snapshotLocked()
	c.mu.Unlock()
	c.reportTransition(ctx, from, StateStopping, st)

	// Best-effort graceful stop: the droplet is deleted regardless.
	if c.cfg.StopCommand != "" && addr != "" {
		res, err := c.exec.Run(ctx, c.cfg.StopCommand, sshexec.RunOptions{Addr: addr, LogOutput: true})
		switch {
		case err != nil:
			c.logger.Warn("graceful stop failed", "error", err)
		case res.ExitCode != 0:
			c.logger.Warn("graceful stop failed", "exit", res.ExitCode)
		}
	}

	if err := c.provider.Delete(ctx, id); err != nil {
		// The droplet may or may not still exist; flag the divergence and
		// keep the handle for manual recovery.
		c.setState(ctx, StateWeird, nil)
		return fmt.Errorf("delete droplet %d: %w", id, err)
	}

	c.setState(ctx, StateDown, func() {
		c.dropletID = 0
		c.address = ""
	})
	return nil
}

// ForceState overrides the lifecycle state unconditionally, bypassing all
// guards. Operational recovery only: nothing else changes, so the droplet
// handle survives a forced state for later inspection.
func (c *Controller) ForceState(ctx context.Context, s State) {
	c.setState(ctx, s, nil)
}

// waitForBoot polls the provider until the droplet is active with a public
// address, then provisions it. Each tick schedules the next one, so no two
// provider queries for the same boot cycle ever overlap.
func (c *Controller) waitForBoot(ctx context.Context, id int, done chan<- error) {
	var deadline time.Time
	if c.cfg.BootTimeout > 0 {
		deadline = c.clock.Now().Add(c.cfg.BootTimeout)
	}

	for {
		select {
		case <-ctx.Done():
			done <- ctx.Err()
			return
		case <-c.clock.After(c.cfg.PollInterval):
		}
		pollTicksTotal.Inc()

		// A forced state wins over a stale poller.
		if st := c.Status().State; st != StateStarting {
			c.logger.Warn("abandoning boot poll, state changed externally", "state", st)
			done <- ErrPollAbandoned
			return
		}

		if !deadline.IsZero() && c.clock.Now().After(deadline) {
			c.casState(ctx, StateStarting, StateWeird, nil)
			done <- ErrBootTimeout
			return
		}

		drop, err := c.provider.Get(ctx, id)
		if err != nil {
			// Transient: a failed provider query and a not-yet-active
			// droplet are the same "not ready" signal.
			c.logger.Debug("droplet not ready", "droplet_id", id, "error", err)
			continue
		}
		if drop.Status != cloud.StatusActive || drop.PublicIPv4 == "" {
			c.logger.Debug("droplet not ready", "droplet_id", id, "status", drop.Status)
			continue
		}

		c.mu.Lock()
		c.address = drop.PublicIPv4
		c.mu.Unlock()
		c.logger.Info("droplet active", "droplet_id", id, "address", drop.PublicIPv4)

		done <- c.provision(ctx, drop)
		return
	}
}

// provision runs the script in order over one shared session. Partial
// execution is possible and not rolled back; the script is assumed
// idempotent. Any failure leaves the droplet running for inspection.
func (c *Controller) provision(ctx context.Context, drop *cloud.Droplet) error {
	sess, err := c.exec.Connect(ctx, drop.PublicIPv4)
	if err != nil {
		return c.fail(ctx, fmt.Errorf("connect for provisioning: %w", err))
	}
	defer sess.Close() //nolint:errcheck // connection teardown is best-effort

	var out io.Writer
	if c.cfg.ProvisionLogs != nil {
		w, logErr := c.cfg.ProvisionLogs.OpenProvisionLog(drop.ID)
		if logErr != nil {
			c.logger.Warn("provision log unavailable", "error", logErr)
		} else {
			defer w.Close() //nolint:errcheck // log teardown is best-effort
			out = w
		}
	}

	start := c.clock.Now()
	for _, command := range c.cfg.Script {
		res, err := c.exec.Run(ctx, command, sshexec.RunOptions{
			Session:   sess,
			LogOutput: true,
			Output:    out,
		})
		if err != nil {
			return c.fail(ctx, &ProvisionError{Command: command, Err: err})
		}
		if res.ExitCode != 0 {
			return c.fail(ctx, &ProvisionError{Command: command, Err: fmt.Errorf("exit status %d", res.ExitCode)})
		}
	}
	provisionSeconds.Observe(c.clock.Now().Sub(start).Seconds())

	if !c.casState(ctx, StateStarting, StateUp, nil) {
		return ErrPollAbandoned
	}
	c.logger.Info("server is up", "droplet_id", drop.ID, "address", drop.PublicIPv4)
	return nil
}

// fail records a provisioning failure: the state becomes weird and the
// droplet handle is retained for manual inspection.
func (c *Controller) fail(ctx context.Context, err error) error {
	c.logger.Error("provisioning failed", "error", err)
	c.casState(ctx, StateStarting, StateWeird, nil)
	return err
}

// snapshotLocked builds a Status. Callers must hold c.mu.
func (c *Controller) snapshotLocked() Status {
	return Status{
		State:     c.state,
		DropletID: c.dropletID,
		Address:   c.address,
	}
}

// setState unconditionally moves to the given state. mutate, when non-nil,
// runs under the same lock (used to set or clear the droplet handle).
func (c *Controller) setState(ctx context.Context, to State, mutate func()) {
	c.mu.Lock()
	from := c.state
	c.state = to
	if mutate != nil {
		mutate()
	}
	st := c.snapshotLocked()
	c.mu.Unlock()
	c.reportTransition(ctx, from, to, st)
}

// casState moves from one state to another only if the current state
// matches. The compare and the swap happen under one lock acquisition, so
// two racing callers cannot both pass the same guard.
func (c *Controller) casState(ctx context.Context, from, to State, mutate func()) bool {
	c.mu.Lock()
	if c.state != from {
		c.mu.Unlock()
		return false
	}
	c.state = to
	if mutate != nil {
		mutate()
	}
	st := c.snapshotLocked()
	c.mu.Unlock()
	c.reportTransition(ctx, from, to, st)
	return true
}

func (c *Controller) reportTransition(ctx context.Context, from, to State, st Status) {
	transitionsTotal.WithLabelValues(string(from), string(to)).Inc()
	c.logger.Info("lifecycle transition", "from", from, "to", to, "droplet_id", st.DropletID)
	if c.cfg.Events != nil {
		c.cfg.Events.StateChanged(ctx, from, to, st)
	}
}
