package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wardenlabs/warden/internal/lifecycle"
	"github.com/wardenlabs/warden/internal/prompt"
)

var forceCmd = &cobra.Command{
	Use:   "force [state]",
	Short: "Override the daemon's lifecycle state",
	Long: `Force the daemon into a specific lifecycle state, bypassing all guards.

This is the operator's escape hatch when the daemon's view has diverged
from reality (for example after a daemon restart while a droplet was
running). It only changes the daemon's bookkeeping: no droplet is created
or deleted.

Valid states: down, starting, up, stopping, weird.`,
	Example: `  # The droplet survived a daemon restart; tell the daemon it is up
  warden force up

  # Pick the state interactively
  warden force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runForce,
}

func init() {
	rootCmd.AddCommand(forceCmd)
}

func runForce(cmd *cobra.Command, args []string) error {
	client, err := requireClient(cmd.Context())
	if err != nil {
		return err
	}

	var raw string
	if len(args) == 1 {
		raw = args[0]
	} else {
		options := make([]string, len(lifecycle.States()))
		for i, s := range lifecycle.States() {
			options[i] = string(s)
		}
		idx, err := prompt.Choice("Force state to:", options)
		if err != nil {
			return err
		}
		raw = options[idx]
	}

	s, err := lifecycle.ParseState(raw)
	if err != nil {
		return err
	}

	st, err := client.ForceState(cmd.Context(), s)
	if err != nil {
		return friendlyAPIError(err)
	}

	fmt.Printf("State forced to %s\n", s)
	printStatus(st)
	return nil
}
