package crypto_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forgeauth/internal/crypto"
	"forgeauth/internal/domain"
)

func TestSignVerify(t *testing.T) {
	seed, err := crypto.GenerateSeed()
	require.NoError(t, err)

	pub := crypto.DeriveIdentity(seed)
	msg := []byte("forge-session/v1 test")
	sig := crypto.Sign(seed, msg)

	assert.True(t, crypto.Verify(pub, msg, sig))
	assert.False(t, crypto.Verify(pub, []byte("other"), sig))

	other, err := crypto.GenerateSeed()
	require.NoError(t, err)
	assert.False(t, crypto.Verify(crypto.DeriveIdentity(other), msg, sig))
}

func TestDeriveIdentity_Deterministic(t *testing.T) {
	var seed domain.Seed
	for i := range seed {
		seed[i] = byte(i)
	}
	assert.Equal(t, crypto.DeriveIdentity(seed), crypto.DeriveIdentity(seed))
}

// RFC 8032 section 7.1, test 1.
func TestDeriveIdentity_RFC8032Vector(t *testing.T) {
	seedHex := "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	pubHex := "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"

	raw, err := hex.DecodeString(seedHex)
	require.NoError(t, err)
	var seed domain.Seed
	copy(seed[:], raw)

	assert.Equal(t, pubHex, crypto.DeriveIdentity(seed).Hex())
}

func TestWipeSeed(t *testing.T) {
	seed := domain.Seed{1, 2, 3}
	crypto.WipeSeed(&seed)
	assert.Equal(t, domain.Seed{}, seed)
	crypto.WipeSeed(nil)
}

func TestFingerprint(t *testing.T) {
	a := crypto.Fingerprint(domain.PublicIdentity{1, 2, 3})
	b := crypto.Fingerprint(domain.PublicIdentity{1, 2, 4})
	assert.Len(t, string(a), 20)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, crypto.Fingerprint(domain.PublicIdentity{1, 2, 3}))
}
