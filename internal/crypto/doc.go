// Package crypto exposes the minimal primitives used by forgeauth.
//
// Contents
//
//   - Ed25519 seed generation, public key derivation, signing and
//     verification (GenerateSeed, DeriveIdentity, Sign, Verify)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Keys and signatures use the fixed-size array types defined in
// internal/domain so a wallet's output never needs a conversion fallback.
// Expanded private keys exist only for the duration of a call and are wiped
// before returning.
package crypto
