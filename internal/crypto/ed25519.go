package crypto

import (
	"crypto/ed25519"
	"crypto/rand"

	"forgeauth/internal/domain"
)

// GenerateSeed returns a fresh random Ed25519 seed.
func GenerateSeed() (seed domain.Seed, err error) {
	_, err = rand.Read(seed[:])
	return seed, err
}

// DeriveIdentity returns the public key for seed.
func DeriveIdentity(seed domain.Seed) domain.PublicIdentity {
	priv := ed25519.NewKeyFromSeed(seed[:])
	defer Wipe(priv)

	var pub domain.PublicIdentity
	copy(pub[:], priv.Public().(ed25519.PublicKey))
	return pub
}

// Sign signs msg with the key derived from seed.
func Sign(seed domain.Seed, msg []byte) domain.Signature {
	priv := ed25519.NewKeyFromSeed(seed[:])
	defer Wipe(priv)

	var sig domain.Signature
	copy(sig[:], ed25519.Sign(priv, msg))
	return sig
}

// Verify verifies sig over msg with pub.
func Verify(pub domain.PublicIdentity, msg []byte, sig domain.Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(pub[:]), msg, sig[:])
}
