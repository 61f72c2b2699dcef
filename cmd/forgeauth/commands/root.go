package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"forgeauth/internal/app"
)

var (
	home       string
	configPath string
	passphrase string
	network    string
	walletKey  string

	wire   *app.Wire
	appCtx *app.App
)

// Execute runs the CLI. Ctrl-C cancels a pending wallet prompt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "forgeauth",
		Short:        "Wallet session establishment for Forge",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				home = app.DefaultHome()
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			if configPath == "" {
				configPath = filepath.Join(home, "config.yaml")
			}

			cfg, err := app.LoadConfig(home, configPath)
			if err != nil {
				return err
			}
			if network != "" {
				cfg.Network = network
			}
			if walletKey != "" {
				cfg.Wallet = walletKey
			}

			wire, err = app.NewWire(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			appCtx = app.New(wire)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wire == nil {
				return nil
			}
			return wire.Close()
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.forgeauth)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <home>/config.yaml)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the keystore")
	root.PersistentFlags().StringVar(&network, "network", "", "network name shown in the challenge")
	root.PersistentFlags().StringVar(&walletKey, "wallet", "", "signing key as hex, 0x-hex or base58 (prefer FORGE_WALLET)")

	root.AddCommand(negotiateCmd(), identityCmd(), sessionCmd(), codecCmd())
	return root
}
