package keysource

import (
	"bytes"
	"fmt"
	"strings"

	"forgeauth/internal/codec"
	"forgeauth/internal/crypto"
	"forgeauth/internal/domain"
)

// keypairSize is the seed||public export format used by Solana-style wallets.
const keypairSize = domain.SeedSize + domain.PublicKeySize

// KeySource is either DirectKey or WalletExtension.
type KeySource interface {
	keySource()
	// Kind names the variant for logs.
	Kind() string
}

// DirectKey carries operator-supplied private key material.
type DirectKey struct {
	Seed domain.Seed
}

func (DirectKey) keySource()   {}
func (DirectKey) Kind() string { return "direct" }

// Identity derives the public identity for the key.
func (k DirectKey) Identity() domain.PublicIdentity { return crypto.DeriveIdentity(k.Seed) }

// Wipe zeroes the held seed.
func (k *DirectKey) Wipe() { crypto.WipeSeed(&k.Seed) }

// WalletExtension defers signing to a wallet provider.
type WalletExtension struct{}

func (WalletExtension) keySource()   {}
func (WalletExtension) Kind() string { return "wallet" }

// FromSeed wraps a seed loaded from elsewhere, e.g. a keystore.
func FromSeed(seed domain.Seed) DirectKey { return DirectKey{Seed: seed} }

// Resolve decides the key source for cfg.
func Resolve(cfg domain.NegotiationConfig) (KeySource, error) {
	raw := strings.TrimSpace(cfg.Wallet)
	if raw == "" {
		return WalletExtension{}, nil
	}

	b, err := decode(raw)
	if err != nil {
		return nil, domain.NewError(domain.KindInvalidKeyMaterial, "keysource.resolve", err)
	}
	defer crypto.Wipe(b)

	switch len(b) {
	case domain.SeedSize:
		var k DirectKey
		copy(k.Seed[:], b)
		return k, nil
	case keypairSize:
		var k DirectKey
		copy(k.Seed[:], b[:domain.SeedSize])
		derived := k.Identity()
		if !bytes.Equal(derived[:], b[domain.SeedSize:]) {
			k.Wipe()
			return nil, domain.NewError(domain.KindInvalidKeyMaterial, "keysource.resolve",
				fmt.Errorf("keypair public half does not match seed"))
		}
		return k, nil
	default:
		return nil, domain.NewError(domain.KindInvalidKeyMaterial, "keysource.resolve",
			fmt.Errorf("want %d-byte seed, got %d bytes", domain.SeedSize, len(b)))
	}
}

// decode reads hex (optionally 0x-prefixed) and falls back to base58 for
// text that is not hex.
func decode(s string) ([]byte, error) {
	if codec.IsHex(s) || strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return codec.DecodeHex(s)
	}
	return codec.DecodeBase58(s)
}
