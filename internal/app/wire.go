package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"forgeauth/internal/domain"
	"forgeauth/internal/metrics"
	identitysvc "forgeauth/internal/services/identity"
	sessionsvc "forgeauth/internal/services/session"
	"forgeauth/internal/store"
	"forgeauth/internal/wallet"
	"forgeauth/internal/wallet/phantom"
)

// Wire bundles all stores, services, and clients for the commands.
type Wire struct {
	Config   Config
	Log      *slog.Logger
	Metrics  *metrics.SessionMetrics
	Keystore *store.KeystoreFile
	Identity *identitysvc.Service
	Store    domain.SessionStore
	Provider domain.WalletProvider
	Sessions *sessionsvc.Service
	HTTP     *http.Client

	closers []func() error
}

// NewWire constructs the dependency graph from cfg. Background work (the
// memory store sweeper) stops when ctx is done.
func NewWire(ctx context.Context, cfg Config) (*Wire, error) {
	log, err := NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	return newWire(ctx, cfg, log)
}

func newWire(ctx context.Context, cfg Config, log *slog.Logger) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &Wire{Config: cfg, Log: log, Metrics: metrics.Session()}

	// Ensure an HTTP client is available for outbound calls
	w.HTTP = cfg.HTTP
	if w.HTTP == nil {
		w.HTTP = http.DefaultClient
	}

	// Key storage
	w.Keystore = store.NewKeystoreFile(cfg.KeystorePath())
	w.Identity = identitysvc.New(w.Keystore)

	// Session records
	switch cfg.Session.Store {
	case StoreRedis:
		rs, err := store.NewRedisSessionStore(ctx, store.RedisConfig{
			Addr:      cfg.Redis.Addr,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		w.Store = rs
		w.closers = append(w.closers, rs.Close)
	default:
		ms := store.NewMemorySessionStore(store.WithMemoryMetrics(w.Metrics))
		if cfg.Session.SweepInterval > 0 {
			go ms.RunSweeper(ctx, cfg.Session.SweepInterval)
		}
		w.Store = ms
	}

	// Wallet provider
	switch cfg.Provider.Kind {
	case ProviderNone:
		w.Provider = wallet.Unavailable{}
	default:
		w.Provider = phantom.New(cfg.Provider.URL, w.HTTP)
	}

	w.Sessions = sessionsvc.New(w.Provider, w.Store,
		sessionsvc.WithTTL(cfg.Session.TTL),
		sessionsvc.WithTimeout(cfg.Session.Timeout),
		sessionsvc.WithLogger(log),
		sessionsvc.WithMetrics(w.Metrics),
	)

	log.Debug("wired",
		"network", cfg.Network,
		"store", cfg.Session.Store,
		"provider", w.Provider.Name(),
		"keystore", w.Keystore.Path(),
	)
	return w, nil
}

// Close releases connections opened by NewWire.
func (w *Wire) Close() error {
	var first error
	for _, c := range w.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
