package identity_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forgeauth/internal/crypto"
	"forgeauth/internal/services/identity"
	"forgeauth/internal/store"
)

const pass = "Tr0ub4dor&3-horse"

func newService(t *testing.T) *identity.Service {
	t.Helper()
	return identity.New(store.NewKeystoreFile(filepath.Join(t.TempDir(), "wallet.json.enc")))
}

func TestGenerateAndLoad(t *testing.T) {
	svc := newService(t)

	id, fp, err := svc.Generate(pass)
	require.NoError(t, err)
	assert.False(t, id.IsZero())
	assert.Len(t, string(fp), 20)

	k, err := svc.Load(pass)
	require.NoError(t, err)
	assert.Equal(t, id, k.Identity())
	assert.Equal(t, id, crypto.DeriveIdentity(k.Seed))

	again, fp2, err := svc.Identity(pass)
	require.NoError(t, err)
	assert.Equal(t, id, again)
	assert.Equal(t, fp, fp2)
}

func TestWeakPassphrase(t *testing.T) {
	svc := newService(t)
	for _, p := range []string{"short1!A", "alllowercase123!", "ALLUPPERCASE123!", "NoDigitsHere!!", "NoSymbols12345"} {
		_, _, err := svc.Generate(p)
		assert.ErrorIs(t, err, identity.ErrWeakPassphrase, p)
	}
}

func TestWrongPassphrase(t *testing.T) {
	svc := newService(t)
	_, _, err := svc.Generate(pass)
	require.NoError(t, err)

	_, err = svc.Load("Wrong-Passphrase-1")
	assert.ErrorIs(t, err, store.ErrWrongPassphrase)
}

func TestLoadWithoutKeystore(t *testing.T) {
	_, _, err := newService(t).Identity(pass)
	assert.ErrorIs(t, err, store.ErrNoKeystore)
}
