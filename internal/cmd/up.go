package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wardenlabs/warden/internal/api"
	"github.com/wardenlabs/warden/internal/lifecycle"
	"github.com/wardenlabs/warden/internal/spinner"
)

// waitPollInterval is how often 'up --wait' asks the daemon for progress.
const waitPollInterval = 2 * time.Second

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Boot the game server droplet",
	Long: `Ask the daemon to create the droplet and provision the game server.

Without --wait the command returns as soon as the droplet is requested;
watch progress with 'warden status'. With --wait it blocks until the
server is up (or the boot fails).`,
	Example: `  # Fire and forget
  warden up

  # Block until players can connect
  warden up --wait`,
	Args: cobra.NoArgs,
	RunE: runUp,
}

func init() {
	rootCmd.AddCommand(upCmd)

	upCmd.Flags().BoolP("wait", "w", false, "wait until the server is up")
}

func runUp(cmd *cobra.Command, _ []string) error {
	client, err := requireClient(cmd.Context())
	if err != nil {
		return err
	}

	st, err := client.CreateServer(cmd.Context())
	if err != nil {
		return friendlyAPIError(err)
	}
	fmt.Printf("Droplet %d requested\n", st.DropletID)

	wait, _ := cmd.Flags().GetBool("wait")
	if !wait {
		fmt.Println("Watch progress with 'warden status'")
		return nil
	}

	final, err := waitForBoot(cmd.Context(), client)
	if err != nil {
		return err
	}

	fmt.Printf("Server is up at %s\n", final.Address)
	return nil
}

// waitForBoot polls the daemon until the boot cycle leaves starting.
func waitForBoot(ctx context.Context, client *api.Client) (lifecycle.Status, error) {
	sp := spinner.New(nil)
	spinnerDone := make(chan struct{})
	go func() {
		defer close(spinnerDone)
		sp.Start() //nolint:errcheck // a broken spinner must not break the wait
	}()
	defer func() {
		sp.Stop()
		<-spinnerDone
	}()

	sp.SetStatus("waiting for droplet to boot")
	ticker := time.NewTicker(waitPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return lifecycle.Status{}, ctx.Err()
		case <-ticker.C:
		}

		st, err := client.Status(ctx)
		if err != nil {
			return lifecycle.Status{}, friendlyAPIError(err)
		}

		switch st.State {
		case lifecycle.StateStarting:
			if st.Address == "" {
				sp.SetStatus(fmt.Sprintf("waiting for droplet %d to boot", st.DropletID))
			} else {
				sp.SetStatus(fmt.Sprintf("provisioning %s", st.Address))
			}
		case lifecycle.StateUp:
			return st, nil
		case lifecycle.StateWeird:
			return st, errors.New("boot failed, state is weird (inspect with 'warden logs', recover with 'warden down')")
		default:
			return st, fmt.Errorf("boot abandoned, state is %s", st.State)
		}
	}
}
