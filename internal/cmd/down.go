package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wardenlabs/warden/internal/prompt"
)

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Tear down the game server droplet",
	Long: `Ask the daemon to stop the game server and delete the droplet.

The daemon first runs the configured stop command over SSH so the game
server can save its world, then deletes the droplet.`,
	Example: `  warden down

  # Skip the confirmation prompt
  warden down --yes`,
	Args: cobra.NoArgs,
	RunE: runDown,
}

func init() {
	rootCmd.AddCommand(downCmd)

	downCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}

func runDown(cmd *cobra.Command, _ []string) error {
	client, err := requireClient(cmd.Context())
	if err != nil {
		return err
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		confirmed, err := prompt.Confirm(
			"Tear down the game server?",
			"The droplet and everything on it will be deleted.",
		)
		if err != nil {
			if errors.Is(err, prompt.ErrCanceled) {
				return nil
			}
			return err
		}
		if !confirmed {
			return nil
		}
	}

	st, err := client.StopServer(cmd.Context())
	if err != nil {
		return friendlyAPIError(err)
	}

	fmt.Println("Server is down")
	printStatus(st)
	return nil
}
