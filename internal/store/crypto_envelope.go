package store

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const (
	// keystoreFormatVersion is the current on-disk envelope version.
	keystoreFormatVersion = 1

	// keystoreAAD binds the ciphertext to its purpose.
	keystoreAAD = "forgeauth/keystore/v1"
)

// ErrWrongPassphrase is returned when the passphrase is incorrect or the
// envelope has been modified.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted keystore")

// envelope is the on-disk JSON structure holding the ciphertext and KDF
// parameters.
type envelope struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

type scryptParams struct{ N, r, p int }

// defaultScrypt is the interactive-login cost recommended for scrypt.
var defaultScrypt = scryptParams{N: 1 << 15, r: 8, p: 1}

// seal derives a key from passphrase and encrypts raw into a JSON envelope.
func seal(passphrase string, raw []byte, params scryptParams) ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	aead, err := newAEAD(passphrase, salt, params)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return json.Marshal(envelope{
		V:      keystoreFormatVersion,
		Salt:   salt,
		N:      params.N,
		R:      params.r,
		P:      params.p,
		Nonce:  nonce,
		Cipher: aead.Seal(nil, nonce, raw, []byte(keystoreAAD)),
	})
}

// open decrypts a JSON envelope with a key derived from passphrase.
func open(passphrase string, b []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("parse keystore: %w", err)
	}
	if env.V != keystoreFormatVersion {
		return nil, fmt.Errorf("unsupported keystore version %d", env.V)
	}
	if len(env.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, ErrWrongPassphrase
	}
	aead, err := newAEAD(passphrase, env.Salt, scryptParams{N: env.N, r: env.R, p: env.P})
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, env.Nonce, env.Cipher, []byte(keystoreAAD))
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

func newAEAD(passphrase string, salt []byte, params scryptParams) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, params.N, params.r, params.p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	return chacha20poly1305.NewX(key)
}
