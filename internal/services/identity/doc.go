// Package identity manages creation, encryption and loading of the operator's
// signing key.
//
// It enforces passphrase policy, generates Ed25519 seeds, and persists them
// via a domain.KeyStore. A loaded key is handed to the session negotiator as
// a direct key source.
package identity
