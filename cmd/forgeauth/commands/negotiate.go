package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"forgeauth/internal/domain"
)

// negotiateCmd runs the session protocol: a configured key signs locally,
// -p unlocks the keystore, and otherwise the wallet bridge is asked.
func negotiateCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "negotiate",
		Short: "Prove wallet ownership and establish a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := appCtx.Negotiate(cmd.Context(), passphrase)
			if err != nil {
				wire.Log.Debug("negotiate failed", "err", err)
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", domain.UserMessage(err))
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}
			fmt.Fprintf(out, "Session established.\nSession:  %s\nIdentity: %s\nExpires:  %s\n",
				rec.SessionID, rec.Identity.Base58(), rec.ExpiresAt.Format(time.RFC3339))
			return nil
		},
	}
	// Failures print the short user message only; details go to the log.
	cmd.SilenceErrors = true
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the session record as JSON")
	return cmd
}
