// Package cmd implements the Warden CLI commands using Cobra.
// It provides the daemon (serve) plus client commands for booting,
// watching, and tearing down the managed game server droplet.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wardenlabs/warden/internal/api"
	"github.com/wardenlabs/warden/internal/config"
	"github.com/wardenlabs/warden/internal/slogger"
)

// defaultListenAddr is used when no configuration is available.
const defaultListenAddr = "127.0.0.1:7654"

// verbosity is the -v count shared by all commands.
var verbosity int

// appConfig holds the loaded application configuration.
var appConfig *config.Config

// configLoader is kept for commands that read or write single keys.
var configLoader *config.Loader

var rootCmd = &cobra.Command{
	Use:   "warden",
	Short: "Manage an on-demand game server droplet",
	Long: `Warden keeps a single cloud droplet hosting a game server, created on
demand and destroyed when nobody is playing.

The daemon (warden serve) owns the droplet lifecycle; the other commands
talk to it over its local HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger := slogger.New(slogger.Config{Verbosity: verbosity})

		// Store dependencies in context for subcommands
		ctx := cmd.Context()
		ctx = slogger.WithLogger(ctx, logger)
		ctx = WithConfig(ctx, appConfig)
		ctx = WithLoader(ctx, configLoader)
		ctx = WithClient(ctx, api.NewClient(daemonAddr()))
		cmd.SetContext(ctx)

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug)")
}

func initConfig() {
	loader, err := config.NewLoader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize config: %v\n", err)
		return
	}

	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		return
	}

	appConfig = cfg
	configLoader = loader
}

// daemonAddr returns the daemon's listen address from config, or the
// default when no configuration is available.
func daemonAddr() string {
	if appConfig != nil && appConfig.Server.Listen != "" {
		return appConfig.Server.Listen
	}
	return defaultListenAddr
}
