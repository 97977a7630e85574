package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wardenlabs/warden/internal/logging"
)

// Default poll interval for following logs.
const defaultLogPollInterval = 100 * time.Millisecond

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View provisioning output for the current droplet",
	Long: `View the provisioning script's output.

Reads the provision log the daemon writes while bringing a droplet up.
The target droplet is taken from the daemon's status; use --droplet to
inspect the log of a destroyed droplet.`,
	Example: `  # View recent output (last 100 lines)
  warden logs

  # Follow output while 'warden up' is provisioning
  warden logs -f

  # Show the full log of an earlier droplet
  warden logs --droplet 4242 --full

  # List stored logs, then delete them all
  warden logs --list
  warden logs --prune`,
	Args: cobra.NoArgs,
	RunE: runLogsCmd,
}

func runLogsCmd(cmd *cobra.Command, _ []string) error {
	follow, err := cmd.Flags().GetBool("follow")
	if err != nil {
		return fmt.Errorf("get follow flag: %w", err)
	}

	lines, err := cmd.Flags().GetInt("lines")
	if err != nil {
		return fmt.Errorf("get lines flag: %w", err)
	}

	full, err := cmd.Flags().GetBool("full")
	if err != nil {
		return fmt.Errorf("get full flag: %w", err)
	}

	dropletID, err := cmd.Flags().GetInt("droplet")
	if err != nil {
		return fmt.Errorf("get droplet flag: %w", err)
	}

	cfg, err := requireConfig(cmd.Context())
	if err != nil {
		return err
	}
	pathMgr := logging.NewPathManager(cfg.Storage.Logs)

	if list, _ := cmd.Flags().GetBool("list"); list {
		return listProvisionLogs(pathMgr)
	}
	if prune, _ := cmd.Flags().GetBool("prune"); prune {
		return pruneProvisionLogs(pathMgr)
	}

	if dropletID == 0 {
		client, err := requireClient(cmd.Context())
		if err != nil {
			return err
		}
		st, err := client.Status(cmd.Context())
		if err != nil {
			return friendlyAPIError(err)
		}
		if st.DropletID == 0 {
			return errors.New("no droplet; pass --droplet to read an old log")
		}
		dropletID = st.DropletID
	}

	reader := logging.NewReader(pathMgr)

	if !pathMgr.LogExists(dropletID) {
		return fmt.Errorf("no provision log for droplet %d", dropletID)
	}

	return outputLogs(cmd.Context(), reader, dropletID, follow, lines, full)
}

func listProvisionLogs(pathMgr *logging.PathManager) error {
	ids, err := pathMgr.ListProvisionLogs()
	if err != nil {
		return fmt.Errorf("list logs: %w", err)
	}
	if len(ids) == 0 {
		fmt.Println("No provision logs.")
		return nil
	}
	for _, id := range ids {
		fmt.Printf("droplet %d\t%s\n", id, pathMgr.ProvisionLogPath(id))
	}
	return nil
}

func pruneProvisionLogs(pathMgr *logging.PathManager) error {
	ids, err := pathMgr.ListProvisionLogs()
	if err != nil {
		return fmt.Errorf("list logs: %w", err)
	}
	for _, id := range ids {
		if err := pathMgr.RemoveProvisionLog(id); err != nil {
			return fmt.Errorf("remove log for droplet %d: %w", id, err)
		}
	}
	fmt.Printf("Removed %d provision log(s)\n", len(ids))
	return nil
}

func outputLogs(ctx context.Context, reader *logging.Reader, dropletID int, follow bool, lines int, full bool) error {
	if follow {
		// Follow mode: show last N lines then stream new output
		return reader.FollowWithHistory(ctx, dropletID, os.Stdout, lines, defaultLogPollInterval)
	}

	// Read mode: show lines and exit
	var logLines []string
	var err error

	if full {
		logLines, err = reader.ReadAll(dropletID)
	} else {
		logLines, err = reader.ReadLastN(dropletID, lines)
	}

	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}

	for _, line := range logLines {
		fmt.Println(line)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().BoolP("follow", "f", false, "follow log output in real-time")
	logsCmd.Flags().IntP("lines", "n", logging.DefaultTailLines, "number of lines to show")
	logsCmd.Flags().Bool("full", false, "show the entire log")
	logsCmd.Flags().Int("droplet", 0, "droplet ID (defaults to the daemon's current droplet)")
	logsCmd.Flags().Bool("list", false, "list stored provision logs")
	logsCmd.Flags().Bool("prune", false, "delete all stored provision logs")
}
