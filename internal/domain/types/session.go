package types

import (
	"encoding/json"
	"time"
)

// DefaultSessionTTL is the lifetime of a freshly negotiated session.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Challenge is the UTF-8 text a wallet signs to prove key ownership.
type Challenge string

// Bytes returns the UTF-8 payload handed to signers.
func (c Challenge) Bytes() []byte { return []byte(c) }

// SessionRecord is a time-bounded proof that a caller controls Identity.
type SessionRecord struct {
	SessionID     string
	Identity      PublicIdentity
	CreatedAt     time.Time
	ExpiresAt     time.Time
	OriginMessage Challenge
}

// IsValid reports whether the record is still usable at now.
func (r SessionRecord) IsValid(now time.Time) bool {
	return !now.After(r.ExpiresAt)
}

// sessionRecordJSON is the boundary form: identity as base58, timestamps
// as RFC 3339.
type sessionRecordJSON struct {
	SessionID     string `json:"session_id"`
	Identity      string `json:"identity"`
	CreatedAt     string `json:"created_at"`
	ExpiresAt     string `json:"expires_at"`
	OriginMessage string `json:"origin_message"`
}

// MarshalJSON renders the record for callers and stores.
func (r SessionRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionRecordJSON{
		SessionID:     r.SessionID,
		Identity:      r.Identity.Base58(),
		CreatedAt:     r.CreatedAt.UTC().Format(time.RFC3339Nano),
		ExpiresAt:     r.ExpiresAt.UTC().Format(time.RFC3339Nano),
		OriginMessage: string(r.OriginMessage),
	})
}

// UnmarshalJSON mirrors MarshalJSON.
func (r *SessionRecord) UnmarshalJSON(data []byte) error {
	var aux sessionRecordJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var id PublicIdentity
	if err := id.UnmarshalText([]byte(aux.Identity)); err != nil {
		return err
	}
	created, err := time.Parse(time.RFC3339Nano, aux.CreatedAt)
	if err != nil {
		return err
	}
	expires, err := time.Parse(time.RFC3339Nano, aux.ExpiresAt)
	if err != nil {
		return err
	}
	*r = SessionRecord{
		SessionID:     aux.SessionID,
		Identity:      id,
		CreatedAt:     created,
		ExpiresAt:     expires,
		OriginMessage: Challenge(aux.OriginMessage),
	}
	return nil
}

// NegotiationConfig is the caller-supplied input to a negotiation.
// Wallet holds hex (optionally 0x-prefixed) or base58 key material and is
// empty when the wallet extension should be used.
type NegotiationConfig struct {
	Wallet  string
	Network string
}

// HasWallet reports whether operator key material was supplied.
func (c NegotiationConfig) HasWallet() bool { return len(c.Wallet) > 0 }

// String hides the wallet field.
func (c NegotiationConfig) String() string {
	if c.HasWallet() {
		return "{wallet:[redacted] network:" + c.Network + "}"
	}
	return "{network:" + c.Network + "}"
}
