package interfaces

import (
	"context"

	domaintypes "forgeauth/internal/domain/types"
)

// WalletProvider is the capability set of an installed wallet: detection,
// connection and message signing. Implementations must make Connect
// idempotent and safe for concurrent use.
type WalletProvider interface {
	// Name identifies the wallet variant, e.g. "phantom".
	Name() string
	// IsAvailable reports whether a wallet is present. A missing wallet is a
	// normal condition, so this never errors.
	IsAvailable(ctx context.Context) bool
	// Connect returns the wallet's public identity, prompting the user only
	// if no connection exists yet.
	Connect(ctx context.Context) (domaintypes.PublicIdentity, error)
	// SignMessage signs msg exactly as given.
	SignMessage(ctx context.Context, msg []byte) (domaintypes.Signature, error)
	// Disconnect drops the shared connection.
	Disconnect(ctx context.Context) error
}

// SessionService negotiates and looks up wallet sessions.
type SessionService interface {
	Negotiate(
		ctx context.Context,
		cfg domaintypes.NegotiationConfig,
	) (domaintypes.SessionRecord, error)
	GetSession(
		ctx context.Context,
		identity domaintypes.PublicIdentity,
	) (domaintypes.SessionRecord, error)
}

// IdentityService manages the operator's locally stored signing key.
type IdentityService interface {
	Generate(passphrase string) (domaintypes.PublicIdentity, domaintypes.Fingerprint, error)
	Identity(passphrase string) (domaintypes.PublicIdentity, domaintypes.Fingerprint, error)
}
