package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/wardenlabs/warden/internal/api"
	"github.com/wardenlabs/warden/internal/config"
	"github.com/wardenlabs/warden/internal/lifecycle"
)

func requireClient(ctx context.Context) (*api.Client, error) {
	client := ClientFromContext(ctx)
	if client == nil {
		return nil, errors.New("daemon client not initialized")
	}
	return client, nil
}

func requireConfig(ctx context.Context) (*config.Config, error) {
	cfg := ConfigFromContext(ctx)
	if cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	return cfg, nil
}

// friendlyAPIError rewrites daemon errors for terminal output: connection
// failures point at 'warden serve', conflicts stay as-is.
func friendlyAPIError(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return errors.New(apiErr.Message)
	}
	return fmt.Errorf("%w (is 'warden serve' running?)", err)
}

// printStatus renders a lifecycle snapshot for the terminal.
func printStatus(st lifecycle.Status) {
	fmt.Printf("state:   %s\n", st.State)
	if st.DropletID != 0 {
		fmt.Printf("droplet: %d\n", st.DropletID)
	}
	if st.Address != "" {
		fmt.Printf("address: %s\n", st.Address)
	}
}
