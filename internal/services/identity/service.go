package identity

import (
	"fmt"
	"unicode"

	"forgeauth/internal/crypto"
	"forgeauth/internal/domain"
	"forgeauth/internal/keysource"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
)

// Service manages the local signing key using a backing store.
type Service struct {
	store domain.KeyStore
}

// New returns an identity service backed by the given store.
func New(s domain.KeyStore) *Service { return &Service{store: s} }

// Generate creates a new seed, saves it encrypted with the passphrase, and
// returns the public identity plus its fingerprint.
func (s *Service) Generate(passphrase string) (domain.PublicIdentity, domain.Fingerprint, error) {
	if !isSecurePassphrase(passphrase) {
		return domain.PublicIdentity{}, "", ErrWeakPassphrase
	}

	seed, err := crypto.GenerateSeed()
	if err != nil {
		return domain.PublicIdentity{}, "", err
	}
	defer crypto.WipeSeed(&seed)

	if err := s.store.SaveSeed(passphrase, seed); err != nil {
		return domain.PublicIdentity{}, "", err
	}
	id := crypto.DeriveIdentity(seed)
	return id, crypto.Fingerprint(id), nil
}

// Load decrypts the stored seed as a direct key source. The caller owns the
// key and should Wipe it when done.
func (s *Service) Load(passphrase string) (keysource.DirectKey, error) {
	seed, err := s.store.LoadSeed(passphrase)
	if err != nil {
		return keysource.DirectKey{}, err
	}
	return keysource.FromSeed(seed), nil
}

// Identity returns the stored public identity and its fingerprint.
func (s *Service) Identity(passphrase string) (domain.PublicIdentity, domain.Fingerprint, error) {
	k, err := s.Load(passphrase)
	if err != nil {
		return domain.PublicIdentity{}, "", err
	}
	defer k.Wipe()
	id := k.Identity()
	return id, crypto.Fingerprint(id), nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
