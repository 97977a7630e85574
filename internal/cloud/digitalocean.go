package cloud

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/digitalocean/godo"

	"github.com/wardenlabs/warden/internal/names"
)

// DropletConfig describes the droplet the provider creates.
type DropletConfig struct {
	NamePrefix        string   // droplet names are <prefix>-<random-name>
	Region            string   // e.g. "nyc1"
	Size              string   // e.g. "s-2vcpu-4gb"
	Image             string   // image slug, e.g. "ubuntu-24-04-x64"
	SSHKeyFingerprint string   // key already registered with the provider
	Tags              []string // applied to every droplet
}

// DigitalOcean implements Provider using the DigitalOcean API.
type DigitalOcean struct {
	client *godo.Client
	cfg    DropletConfig
}

// NewDigitalOcean creates a Provider authenticated with the given API token.
func NewDigitalOcean(token string, cfg DropletConfig) *DigitalOcean {
	return NewDigitalOceanWithClient(godo.NewFromToken(token), cfg)
}

// NewDigitalOceanWithClient creates a Provider using a preconfigured godo
// client. Used by tests to point at a stub API server.
func NewDigitalOceanWithClient(client *godo.Client, cfg DropletConfig) *DigitalOcean {
	return &DigitalOcean{client: client, cfg: cfg}
}

// Create provisions a new droplet with a generated name.
func (d *DigitalOcean) Create(ctx context.Context) (*Droplet, error) {
	req := &godo.DropletCreateRequest{
		Name:   fmt.Sprintf("%s-%s", d.cfg.NamePrefix, names.Generate()),
		Region: d.cfg.Region,
		Size:   d.cfg.Size,
		Image:  godo.DropletCreateImage{Slug: d.cfg.Image},
		SSHKeys: []godo.DropletCreateSSHKey{
			{Fingerprint: d.cfg.SSHKeyFingerprint},
		},
		Tags: d.cfg.Tags,
	}

	drop, _, err := d.client.Droplets.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create droplet: %w", err)
	}

	return fromGodo(drop), nil
}

// Get fetches the droplet's current status and network address.
func (d *DigitalOcean) Get(ctx context.Context, id int) (*Droplet, error) {
	drop, _, err := d.client.Droplets.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get droplet %d: %w", id, err)
	}

	return fromGodo(drop), nil
}

// Delete destroys the droplet.
func (d *DigitalOcean) Delete(ctx context.Context, id int) error {
	if _, err := d.client.Droplets.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete droplet %d: %w", id, err)
	}
	return nil
}

// fromGodo converts the API representation to the package's Droplet.
func fromGodo(d *godo.Droplet) *Droplet {
	// PublicIPv4 errors only on a nil receiver; an empty address simply
	// means the network has not been allocated yet.
	ip, _ := d.PublicIPv4()

	return &Droplet{
		ID:         d.ID,
		Name:       d.Name,
		Status:     d.Status,
		PublicIPv4: ip,
	}
}

// isNotFound reports whether the API rejected the request with a 404.
func isNotFound(err error) bool {
	var errResp *godo.ErrorResponse
	return errors.As(err, &errResp) &&
		errResp.Response != nil &&
		errResp.Response.StatusCode == http.StatusNotFound
}
