package interfaces

import (
	"context"

	domaintypes "forgeauth/internal/domain/types"
)

// SessionStore holds session records keyed by public identity. Put is
// atomic per identity and the last writer wins. Get returns expired
// records too; validity is the caller's decision.
type SessionStore interface {
	Put(ctx context.Context, record domaintypes.SessionRecord) error
	Get(
		ctx context.Context,
		identity domaintypes.PublicIdentity,
	) (domaintypes.SessionRecord, error)
	Delete(ctx context.Context, identity domaintypes.PublicIdentity) error
}

// KeyStore persists the operator's Ed25519 seed under a passphrase.
type KeyStore interface {
	SaveSeed(passphrase string, seed domaintypes.Seed) error
	LoadSeed(passphrase string) (domaintypes.Seed, error)
}
