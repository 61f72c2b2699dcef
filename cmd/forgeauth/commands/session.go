package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"forgeauth/internal/codec"
	"forgeauth/internal/domain"
)

// sessionCmd inspects stored sessions. With the memory store only sessions
// created by the same process are visible, so these are mostly useful with
// session.store: redis.
func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect and revoke stored sessions",
	}
	cmd.AddCommand(sessionShowCmd(), sessionRevokeCmd())
	return cmd
}

func sessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <identity>",
		Short: "Print the stored session for an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := codec.ParseIdentity(args[0])
			if err != nil {
				return err
			}
			rec, err := appCtx.Sessions.GetSession(cmd.Context(), id)
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("no session for %s", id)
			}
			if err != nil {
				return err
			}

			status := "valid"
			if !appCtx.Sessions.IsValid(rec) {
				status = "expired"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session:  %s\nIdentity: %s\nCreated:  %s\nExpires:  %s\nStatus:   %s\n",
				rec.SessionID, rec.Identity, rec.CreatedAt.Format(time.RFC3339),
				rec.ExpiresAt.Format(time.RFC3339), status)
			return nil
		},
	}
}

func sessionRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <identity>",
		Short: "Delete the stored session for an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := codec.ParseIdentity(args[0])
			if err != nil {
				return err
			}
			if err := appCtx.Sessions.Revoke(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session for %s revoked.\n", id)
			return nil
		},
	}
}
