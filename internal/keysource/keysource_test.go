package keysource_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forgeauth/internal/codec"
	"forgeauth/internal/crypto"
	"forgeauth/internal/domain"
	"forgeauth/internal/keysource"
)

func testSeed() domain.Seed {
	var s domain.Seed
	for i := range s {
		s[i] = byte(0x12 + i)
	}
	return s
}

func TestResolve_NoWalletUsesExtension(t *testing.T) {
	for _, w := range []string{"", "   "} {
		src, err := keysource.Resolve(domain.NegotiationConfig{Wallet: w, Network: "testnet"})
		require.NoError(t, err)
		assert.IsType(t, keysource.WalletExtension{}, src)
		assert.Equal(t, "wallet", src.Kind())
	}
}

func TestResolve_HexSeed(t *testing.T) {
	seed := testSeed()
	for _, w := range []string{codec.EncodeHex(seed[:]), "0x" + codec.EncodeHex(seed[:]), "0X" + strings.ToUpper(codec.EncodeHex(seed[:]))} {
		src, err := keysource.Resolve(domain.NegotiationConfig{Wallet: w})
		require.NoError(t, err, w)
		k, ok := src.(keysource.DirectKey)
		require.True(t, ok)
		assert.Equal(t, seed, k.Seed)
		assert.Equal(t, crypto.DeriveIdentity(seed), k.Identity())
	}
}

func TestResolve_Base58Keypair(t *testing.T) {
	seed := testSeed()
	pub := crypto.DeriveIdentity(seed)
	keypair := append(append([]byte{}, seed[:]...), pub[:]...)

	src, err := keysource.Resolve(domain.NegotiationConfig{Wallet: codec.EncodeBase58(keypair)})
	require.NoError(t, err)
	assert.Equal(t, seed, src.(keysource.DirectKey).Seed)
}

func TestResolve_KeypairMismatch(t *testing.T) {
	seed := testSeed()
	keypair := append(append([]byte{}, seed[:]...), make([]byte, 32)...)

	_, err := keysource.Resolve(domain.NegotiationConfig{Wallet: codec.EncodeHex(keypair)})
	require.ErrorIs(t, err, domain.ErrInvalidKeyMaterial)
}

func TestResolve_WrongLengths(t *testing.T) {
	for _, n := range []int{1, 16, 31, 33, 48, 63, 65, 128} {
		b := make([]byte, n)
		for i := range b {
			b[i] = 0xab
		}
		_, err := keysource.Resolve(domain.NegotiationConfig{Wallet: "0x" + codec.EncodeHex(b)})
		require.Error(t, err, "length %d", n)
		assert.Equal(t, domain.KindInvalidKeyMaterial, domain.KindOf(err), "length %d", n)
	}
}

func TestResolve_GarbledHex(t *testing.T) {
	_, err := keysource.Resolve(domain.NegotiationConfig{Wallet: "0x12zz"})
	require.ErrorIs(t, err, domain.ErrInvalidKeyMaterial)
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}

func TestResolve_ErrorNeverEchoesKey(t *testing.T) {
	secret := "0x" + strings.Repeat("ab", 31)
	_, err := keysource.Resolve(domain.NegotiationConfig{Wallet: secret})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), strings.Repeat("ab", 4))
}

func TestDirectKey_Wipe(t *testing.T) {
	k := keysource.FromSeed(testSeed())
	k.Wipe()
	assert.Equal(t, domain.Seed{}, k.Seed)
}
