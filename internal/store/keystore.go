package store

import (
	"fmt"
	"os"
	"sync"

	"forgeauth/internal/crypto"
	"forgeauth/internal/domain"
)

// ErrNoKeystore is returned by LoadSeed when the file does not exist.
var ErrNoKeystore = fmt.Errorf("keystore not found")

// KeystoreFile persists the operator's seed, encrypted, at one path.
type KeystoreFile struct {
	path   string
	params scryptParams
	mu     sync.Mutex
}

// NewKeystoreFile returns a keystore at path.
func NewKeystoreFile(path string) *KeystoreFile {
	return &KeystoreFile{path: path, params: defaultScrypt}
}

// Path returns the keystore location.
func (k *KeystoreFile) Path() string { return k.path }

// SaveSeed encrypts seed under passphrase and replaces the file.
func (k *KeystoreFile) SaveSeed(passphrase string, seed domain.Seed) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	raw := seed
	defer crypto.WipeSeed(&raw)

	b, err := seal(passphrase, raw[:], k.params)
	if err != nil {
		return err
	}
	return writeFile(k.path, b, 0o600)
}

// LoadSeed reads and decrypts the seed.
func (k *KeystoreFile) LoadSeed(passphrase string) (domain.Seed, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	var seed domain.Seed
	b, err := readFile(k.path)
	if err != nil {
		return seed, err
	}
	if b == nil {
		return seed, fmt.Errorf("%w: %s", ErrNoKeystore, k.path)
	}
	pt, err := open(passphrase, b)
	if err != nil {
		return seed, err
	}
	defer crypto.Wipe(pt)
	if len(pt) != domain.SeedSize {
		return seed, domain.NewError(domain.KindInvalidKeyMaterial, "keystore.load",
			fmt.Errorf("want %d-byte seed, got %d bytes", domain.SeedSize, len(pt)))
	}
	copy(seed[:], pt)
	return seed, nil
}

// Exists reports whether the keystore file is present.
func (k *KeystoreFile) Exists() bool {
	_, err := os.Stat(k.path)
	return err == nil
}

// Compile-time assertion that KeystoreFile implements domain.KeyStore.
var _ domain.KeyStore = (*KeystoreFile)(nil)
