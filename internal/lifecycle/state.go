// Package lifecycle provides the droplet lifecycle controller: the state
// machine governing the hosted game server's droplet from creation through
// provisioning to teardown.
package lifecycle

import "fmt"

// State is the controller's belief about the droplet's readiness.
type State string

// Lifecycle states.
const (
	// StateDown means no droplet exists.
	StateDown State = "down"

	// StateStarting means a droplet has been requested and is booting or
	// being provisioned.
	StateStarting State = "starting"

	// StateUp means the droplet is provisioned and the game server runs.
	StateUp State = "up"

	// StateStopping means teardown is in progress.
	StateStopping State = "stopping"

	// StateWeird means the controller's model and the real droplet have
	// diverged (provisioning or teardown failed) and manual recovery is
	// required: inspect the droplet, then force a state or stop the server.
	StateWeird State = "weird"
)

// states is the set of valid lifecycle states.
var states = map[State]bool{
	StateDown:     true,
	StateStarting: true,
	StateUp:       true,
	StateStopping: true,
	StateWeird:    true,
}

// States returns all lifecycle states in their natural cycle order.
func States() []State {
	return []State{StateDown, StateStarting, StateUp, StateStopping, StateWeird}
}

// Valid reports whether s is one of the five lifecycle states.
func (s State) Valid() bool {
	return states[s]
}

// ParseState converts a string into a State.
func ParseState(s string) (State, error) {
	st := State(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown lifecycle state %q (valid: down, starting, up, stopping, weird)", s)
	}
	return st, nil
}

// Status is a point-in-time snapshot of the controller's view.
type Status struct {
	State     State  `json:"state"`
	DropletID int    `json:"droplet_id,omitempty"` // 0 when no droplet handle is held
	Address   string `json:"address,omitempty"`    // public IPv4, empty until discovered
}
