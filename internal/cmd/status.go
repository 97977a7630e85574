package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the daemon's lifecycle state",
	Example: `  warden status

  # Machine-readable output
  warden status --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := requireClient(cmd.Context())
		if err != nil {
			return err
		}

		st, err := client.Status(cmd.Context())
		if err != nil {
			return friendlyAPIError(err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			out, err := json.MarshalIndent(st, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal status: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		printStatus(st)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().Bool("json", false, "print status as JSON")
}
