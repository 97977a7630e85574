// Package cloud provides an abstraction over cloud provider droplet operations.
package cloud

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the provider has no record of the droplet.
var ErrNotFound = errors.New("droplet not found")

// StatusActive is the provider-reported status of a fully booted droplet.
// Other observed values ("new", "off", "archive") all mean "not ready".
const StatusActive = "active"

// Droplet holds the provider's view of a compute instance.
type Droplet struct {
	ID         int
	Name       string
	Status     string
	PublicIPv4 string // empty until the provider allocates the network
}

// Provider manages the lifecycle of a single droplet.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/provider.go . Provider
type Provider interface {
	// Create provisions a new droplet and returns its handle. The droplet
	// is usually not active yet; poll Get until it is.
	Create(ctx context.Context) (*Droplet, error)

	// Get returns the current state of a droplet.
	// Returns ErrNotFound if the droplet does not exist.
	Get(ctx context.Context, id int) (*Droplet, error)

	// Delete destroys a droplet.
	Delete(ctx context.Context, id int) error
}
