package app

import (
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forgeauth/internal/crypto"
	"forgeauth/internal/domain"
	"forgeauth/internal/keysource"
)

func testWire(t *testing.T, mutate func(*Config)) *Wire {
	t.Helper()
	cfg := DefaultConfig(t.TempDir())
	cfg.Provider.Kind = ProviderNone
	if mutate != nil {
		mutate(&cfg)
	}
	w, err := newWire(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestApp_NegotiateDirectKey(t *testing.T) {
	seed, err := crypto.GenerateSeed()
	require.NoError(t, err)
	w := testWire(t, func(c *Config) { c.Wallet = hex.EncodeToString(seed[:]) })

	rec, err := New(w).Negotiate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, crypto.DeriveIdentity(seed), rec.Identity)

	stored, err := w.Store.Get(context.Background(), rec.Identity)
	require.NoError(t, err)
	assert.Equal(t, rec.SessionID, stored.SessionID)
}

func TestApp_NegotiateWithoutWallet(t *testing.T) {
	w := testWire(t, nil)
	_, err := New(w).Negotiate(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrWalletUnavailable)
}

func TestApp_NegotiateFromKeystore(t *testing.T) {
	const pass = "Keystore-Pass-42!"
	w := testWire(t, nil)

	id, _, err := w.Identity.Generate(pass)
	require.NoError(t, err)

	rec, err := New(w).Negotiate(context.Background(), pass)
	require.NoError(t, err)
	assert.Equal(t, id, rec.Identity)
}

func TestApp_NegotiateKeyWipesSeed(t *testing.T) {
	w := testWire(t, nil)
	seed, err := crypto.GenerateSeed()
	require.NoError(t, err)
	key := keysource.FromSeed(seed)

	rec, err := New(w).negotiateKey(context.Background(), &key, "testnet")
	require.NoError(t, err)
	assert.Equal(t, crypto.DeriveIdentity(seed), rec.Identity)
	assert.Equal(t, domain.Seed{}, key.Seed)
}

func TestNewWire_PhantomProvider(t *testing.T) {
	w := testWire(t, func(c *Config) { c.Provider.Kind = ProviderPhantom })
	assert.Equal(t, "phantom", w.Provider.Name())
}
