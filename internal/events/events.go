// Package events publishes lifecycle transitions to NATS for external
// consumers (Discord bots, dashboards).
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/wardenlabs/warden/internal/lifecycle"
)

// DefaultSubject is the subject lifecycle events are published on.
const DefaultSubject = "warden.lifecycle"

// Event is the wire payload for a lifecycle transition.
type Event struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	DropletID int       `json:"droplet_id,omitempty"`
	Address   string    `json:"address,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher publishes lifecycle transitions to a NATS subject. It
// implements lifecycle.EventSink.
type Publisher struct {
	nc      *nats.Conn
	subject string
	logger  *slog.Logger
}

// NewPublisher connects to NATS and returns a Publisher. Reconnection is
// handled by the client; publishes while disconnected are buffered.
func NewPublisher(url, subject string, logger *slog.Logger) (*Publisher, error) {
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	opts := []nats.Option{
		nats.Name("warden"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	return &Publisher{nc: nc, subject: subject, logger: logger}, nil
}

// StateChanged publishes a transition event. Failures are logged, never
// surfaced: event delivery must not affect the lifecycle.
func (p *Publisher) StateChanged(_ context.Context, from, to lifecycle.State, st lifecycle.Status) {
	payload, err := json.Marshal(Event{
		From:      string(from),
		To:        string(to),
		DropletID: st.DropletID,
		Address:   st.Address,
		At:        time.Now().UTC(),
	})
	if err != nil {
		p.logger.Warn("marshal lifecycle event", "error", err)
		return
	}

	if err := p.nc.Publish(p.subject, payload); err != nil {
		p.logger.Warn("publish lifecycle event", "subject", p.subject, "error", err)
	}
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Drain() //nolint:errcheck // connection teardown is best-effort
		p.nc.Close()
	}
}
