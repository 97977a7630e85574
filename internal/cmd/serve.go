package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wardenlabs/warden/internal/api"
	"github.com/wardenlabs/warden/internal/cloud"
	"github.com/wardenlabs/warden/internal/events"
	"github.com/wardenlabs/warden/internal/keychain"
	"github.com/wardenlabs/warden/internal/lifecycle"
	"github.com/wardenlabs/warden/internal/logging"
	"github.com/wardenlabs/warden/internal/slogger"
	"github.com/wardenlabs/warden/internal/sshexec"
)

// shutdownTimeout bounds how long the daemon waits for in-flight requests
// on exit.
const shutdownTimeout = 10 * time.Second

// defaultScript provisions a Minecraft server through docker on a fresh
// Ubuntu droplet. Overridable via provision.script in the config.
var defaultScript = []string{
	"sudo apt-get update -y",
	"sudo apt-get install -y docker.io",
	"sudo docker run -d --name gameserver --restart unless-stopped -p 25565:25565 -e EULA=TRUE itzg/minecraft-server",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the warden daemon",
	Long: `Run the daemon that owns the droplet lifecycle.

The daemon keeps the lifecycle state in memory only: restarting it resets
the state to down, even if a droplet is still running. Use 'warden status'
against your cloud dashboard and 'warden force' to reconcile after a
restart.`,
	Example: `  warden serve
  warden serve -v`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := requireConfig(cmd.Context())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	pathMgr := logging.NewPathManager(cfg.Storage.Logs)
	if err := os.MkdirAll(pathMgr.BaseDir(), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	logTee, err := logging.NewTeeWriterAppend(os.Stderr, pathMgr.DaemonLogPath())
	if err != nil {
		return fmt.Errorf("open daemon log: %w", err)
	}
	defer func() {
		logTee.Sync()  //nolint:errcheck // best-effort flush on exit
		logTee.Close() //nolint:errcheck
	}()

	logger := slogger.New(slogger.Config{Verbosity: verbosity, Daemon: true, Output: logTee})
	logger.Info("daemon log opened", "path", logTee.LogPath())

	kc, err := keychain.New()
	if err != nil {
		return fmt.Errorf("initialize credential storage: %w", err)
	}
	token, err := keychain.ResolveToken(kc)
	if errors.Is(err, keychain.ErrNotFound) {
		return errors.New("no DigitalOcean token configured (run 'warden auth login')")
	}
	if err != nil {
		return fmt.Errorf("resolve API token: %w", err)
	}

	provider := cloud.NewDigitalOcean(token, cloud.DropletConfig{
		NamePrefix:        cfg.Provider.NamePrefix,
		Region:            cfg.Provider.Region,
		Size:              cfg.Provider.Size,
		Image:             cfg.Provider.Image,
		SSHKeyFingerprint: cfg.Provider.SSHKeyFingerprint,
		Tags:              cfg.Provider.Tags,
	})

	dialer, err := sshexec.NewDialer(sshexec.ClientConfig{
		User:           cfg.SSH.User,
		KeyPath:        cfg.SSH.KeyPath,
		Port:           cfg.SSH.Port,
		ConnectTimeout: cfg.SSH.ConnectTimeout,
	})
	if err != nil {
		return fmt.Errorf("configure ssh: %w", err)
	}

	lcfg := lifecycle.Config{
		Script:        cfg.Provision.Script,
		StopCommand:   cfg.Server.StopCommand,
		PollInterval:  cfg.Server.PollInterval,
		BootTimeout:   cfg.Server.BootTimeout,
		Logger:        logger,
		ProvisionLogs: pathMgr,
	}
	if len(lcfg.Script) == 0 {
		lcfg.Script = defaultScript
	}
	if cfg.Events.URL != "" {
		pub, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Subject, logger)
		if err != nil {
			return fmt.Errorf("connect event publisher: %w", err)
		}
		defer pub.Close()
		lcfg.Events = pub
	}

	ctrl := lifecycle.New(provider, sshexec.New(dialer, logger), lcfg)

	srv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           api.NewHandler(ctrl, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("daemon listening", "addr", cfg.Server.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
