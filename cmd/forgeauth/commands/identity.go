package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func identityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Manage the local signing key",
	}
	cmd.AddCommand(identityInitCmd(), identityShowCmd())
	return cmd
}

func identityInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a signing key and store it encrypted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			if wire.Keystore.Exists() && !force {
				return fmt.Errorf("keystore %s already exists (use --force to replace it)", wire.Keystore.Path())
			}
			id, fp, err := appCtx.IDs.Generate(passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Identity created.\nIdentity:    %s\nFingerprint: %s\n", id, fp)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing keystore")
	return cmd
}

func identityShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored identity and fingerprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			id, fp, err := appCtx.IDs.Identity(passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Identity:    %s\nFingerprint: %s\n", id, fp)
			return nil
		},
	}
}
