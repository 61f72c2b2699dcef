package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"forgeauth/internal/domain"
)

// fingerprintBytes is how much of the SHA-256 digest is shown (20 hex chars).
const fingerprintBytes = 10

// Fingerprint returns a short digest of id for comparing identities by eye.
func Fingerprint(id domain.PublicIdentity) domain.Fingerprint {
	sum := sha256.Sum256(id[:])
	return domain.Fingerprint(hex.EncodeToString(sum[:fingerprintBytes]))
}
