package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wardenlabs/warden/internal/keychain"
	"github.com/wardenlabs/warden/internal/prompt"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the DigitalOcean API token",
	Long: `Manage the DigitalOcean API token used by the daemon.

The token is stored in the system keyring. For unattended hosts, the
` + keychain.EnvToken + ` environment variable overrides the keyring.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the DigitalOcean API token",
	Example: `  warden auth login`,
	Args:    cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		kc, err := keychain.New()
		if err != nil {
			return fmt.Errorf("initialize credential storage: %w", err)
		}

		token, err := prompt.Secret("DigitalOcean API token:")
		if err != nil {
			if errors.Is(err, prompt.ErrCanceled) {
				return nil
			}
			return err
		}
		if token == "" {
			return errors.New("empty token")
		}

		if err := kc.SetToken(token); err != nil {
			return fmt.Errorf("store token: %w", err)
		}

		fmt.Println("Token stored securely.")
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API token",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		kc, err := keychain.New()
		if err != nil {
			return fmt.Errorf("initialize credential storage: %w", err)
		}

		if err := kc.DeleteToken(); err != nil {
			return fmt.Errorf("delete token: %w", err)
		}

		fmt.Println("Token removed.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether an API token is configured",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		kc, err := keychain.New()
		if err != nil {
			return fmt.Errorf("initialize credential storage: %w", err)
		}

		_, err = keychain.ResolveToken(kc)
		if errors.Is(err, keychain.ErrNotFound) {
			fmt.Println("DigitalOcean: not configured")
			return nil
		}
		if err != nil {
			return fmt.Errorf("resolve token: %w", err)
		}

		fmt.Println("DigitalOcean: configured")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
}
