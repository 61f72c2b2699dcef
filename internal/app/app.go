package app

import (
	"context"

	"forgeauth/internal/domain"
	"forgeauth/internal/keysource"
	identitysvc "forgeauth/internal/services/identity"
	sessionsvc "forgeauth/internal/services/session"
)

// App is the command-facing surface over a Wire.
type App struct {
	IDs      *identitysvc.Service
	Sessions *sessionsvc.Service

	cfg Config
}

func New(w *Wire) *App {
	return &App{
		IDs:      w.Identity,
		Sessions: w.Sessions,
		cfg:      w.Config,
	}
}

// Negotiate establishes a session for the configured network.
//
// Key selection:
//   - An explicit wallet key in the config wins.
//   - Otherwise a non-empty passphrase unlocks the keystore.
//   - Otherwise the wallet provider is asked to connect and sign.
func (a *App) Negotiate(ctx context.Context, passphrase string) (domain.SessionRecord, error) {
	cfg := a.cfg.NegotiationConfig()
	if cfg.HasWallet() || passphrase == "" {
		return a.Sessions.Negotiate(ctx, cfg)
	}

	key, err := a.IDs.Load(passphrase)
	if err != nil {
		return domain.SessionRecord{}, err
	}
	return a.negotiateKey(ctx, &key, cfg.Network)
}

// negotiateKey signs with key and wipes it afterwards.
func (a *App) negotiateKey(ctx context.Context, key *keysource.DirectKey, network string) (domain.SessionRecord, error) {
	defer key.Wipe()
	return a.Sessions.NegotiateSource(ctx, *key, network)
}
