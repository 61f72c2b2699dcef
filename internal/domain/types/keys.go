package types

import (
	"encoding/base64"
	"encoding/hex"

	"github.com/btcsuite/btcutil/base58"
)

const (
	// SeedSize is the length of an Ed25519 private key seed.
	SeedSize = 32
	// PublicKeySize is the length of an Ed25519 public key.
	PublicKeySize = 32
	// SignatureSize is the length of an Ed25519 signature.
	SignatureSize = 64
)

// PublicIdentity is the Ed25519 public key a wallet proves ownership of.
type PublicIdentity [PublicKeySize]byte

// Slice returns the key as a []byte.
func (p PublicIdentity) Slice() []byte { return p[:] }

// IsZero reports whether the identity was never set.
func (p PublicIdentity) IsZero() bool { return p == PublicIdentity{} }

// Base58 returns the wallet address form of the key.
func (p PublicIdentity) Base58() string { return base58.Encode(p[:]) }

// Hex returns the lowercase hex form of the key.
func (p PublicIdentity) Hex() string { return hex.EncodeToString(p[:]) }

// String returns the base58 address.
func (p PublicIdentity) String() string { return p.Base58() }

// MarshalText encodes the identity as base58.
func (p PublicIdentity) MarshalText() ([]byte, error) { return []byte(p.Base58()), nil }

// UnmarshalText decodes a base58 identity.
func (p *PublicIdentity) UnmarshalText(text []byte) error {
	b := base58.Decode(string(text))
	if len(b) != PublicKeySize {
		return &Error{Kind: KindMalformedInput, Op: "identity.unmarshal"}
	}
	copy(p[:], b)
	return nil
}

// Seed is raw Ed25519 private key material. It is never logged or encoded
// into error text.
type Seed [SeedSize]byte

// Slice returns the seed as a []byte.
func (s *Seed) Slice() []byte { return s[:] }

// String hides the seed from fmt verbs.
func (s Seed) String() string { return "[redacted]" }

// GoString hides the seed from %#v.
func (s Seed) GoString() string { return "types.Seed{[redacted]}" }

// Signature is an Ed25519 signature over a challenge.
type Signature [SignatureSize]byte

// Slice returns the signature as a []byte.
func (s Signature) Slice() []byte { return s[:] }

// Base64 returns the standard base64 form of the signature.
func (s Signature) Base64() string { return base64.StdEncoding.EncodeToString(s[:]) }

// Fingerprint is a short, human-comparable digest of a public identity.
type Fingerprint string
