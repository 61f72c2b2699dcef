package session_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forgeauth/internal/domain"
	"forgeauth/internal/services/session"
)

func TestBuildChallenge_Deterministic(t *testing.T) {
	f := session.ChallengeFields{
		Network:  "mainnet-beta",
		Identity: domain.PublicIdentity{1, 2, 3},
		IssuedAt: time.Date(2026, 1, 2, 3, 4, 5, 999, time.FixedZone("x", 3600)),
		Nonce:    "00112233445566778899aabbccddeeff",
	}
	a, err := session.BuildChallenge(f)
	require.NoError(t, err)
	b, err := session.BuildChallenge(f)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	lines := strings.Split(string(a), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, session.ChallengeTag, lines[0])
	assert.Equal(t, "network: mainnet-beta", lines[2])
	assert.Equal(t, "identity: "+f.Identity.Base58(), lines[3])
	assert.Equal(t, "issued-at: 2026-01-02T02:04:05Z", lines[4])
	assert.Equal(t, "nonce: "+f.Nonce, lines[5])
}

func TestParseChallenge_RoundTrip(t *testing.T) {
	f := session.ChallengeFields{
		Network:  "devnet",
		Identity: domain.PublicIdentity{9, 9, 9},
		IssuedAt: time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC),
		Nonce:    "abcdef",
	}
	c, err := session.BuildChallenge(f)
	require.NoError(t, err)

	got, err := session.ParseChallenge(c)
	require.NoError(t, err)
	assert.Equal(t, f.Network, got.Network)
	assert.Equal(t, f.Identity, got.Identity)
	assert.True(t, f.IssuedAt.Equal(got.IssuedAt))
	assert.Equal(t, f.Nonce, got.Nonce)
}

func TestParseChallenge_Rejects(t *testing.T) {
	for name, c := range map[string]string{
		"other version": "forge-session/v2\nSign in to Forge to prove you own this wallet.\nnetwork: a\nidentity: 1\nissued-at: x\nnonce: y",
		"too short":     "forge-session/v1",
		"bad line":      "forge-session/v1\nSign in to Forge to prove you own this wallet.\nnetwork a\nidentity: 1\nissued-at: x\nnonce: y",
	} {
		_, err := session.ParseChallenge(domain.Challenge(c))
		assert.ErrorIs(t, err, domain.ErrMalformedInput, name)
	}
}

func TestBuildChallenge_RejectsControlCharacters(t *testing.T) {
	_, err := session.BuildChallenge(session.ChallengeFields{Network: "dev\nnet", Nonce: "a"})
	require.ErrorIs(t, err, domain.ErrMalformedInput)

	_, err = session.BuildChallenge(session.ChallengeFields{Network: "devnet", Nonce: "a\x00"})
	require.ErrorIs(t, err, domain.ErrMalformedInput)
}

func TestNewNonce(t *testing.T) {
	a, err := session.NewNonce()
	require.NoError(t, err)
	b, err := session.NewNonce()
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
