package commands

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forgeauth/internal/crypto"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	home, configPath, passphrase, network, walletKey = "", "", "", "", ""
	wire, appCtx = nil, nil
	t.Setenv("FORGE_PROVIDER", "none")
	t.Setenv("FORGE_LOG_LEVEL", "error")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCodecCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "--home", dir, "codec", "encode", "--format", "base58", "0x0001ff")
	require.NoError(t, err)
	enc := strings.TrimSpace(out)

	out, err = run(t, "--home", dir, "codec", "decode", "--format", "base58", enc)
	require.NoError(t, err)
	assert.Equal(t, "0001ff", strings.TrimSpace(out))

	_, err = run(t, "--home", dir, "codec", "encode", "--format", "rot13", "00")
	assert.Error(t, err)
}

func TestIdentityCommands(t *testing.T) {
	dir := t.TempDir()
	const pass = "Sturdy-Passphrase-7"

	out, err := run(t, "--home", dir, "-p", pass, "identity", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Fingerprint:")

	_, err = run(t, "--home", dir, "-p", pass, "identity", "init")
	assert.Error(t, err, "second init without --force must fail")

	out, err = run(t, "--home", dir, "-p", pass, "identity", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Identity:")

	out, err = run(t, "--home", dir, "-p", pass, "negotiate")
	require.NoError(t, err)
	assert.Contains(t, out, "Session established.")
}

func TestNegotiateCommand(t *testing.T) {
	seed, err := crypto.GenerateSeed()
	require.NoError(t, err)
	dir := t.TempDir()

	out, err := run(t, "--home", dir, "--network", "devnet", "--wallet", hex.EncodeToString(seed[:]), "negotiate", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"identity": "`+crypto.DeriveIdentity(seed).Base58()+`"`)
	assert.Contains(t, out, "network: devnet")

	out, err = run(t, "--home", dir, "negotiate")
	require.Error(t, err)
	assert.Contains(t, out, "no wallet available")
}
