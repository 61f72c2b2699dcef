package types

import "errors"

// ErrorKind classifies negotiation failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindMalformedInput
	KindInvalidKeyMaterial
	KindWalletUnavailable
	KindConnectionDenied
	KindSignatureDenied
	KindSignatureInvalid
	KindTimeout
	KindCanceled
)

var kindMessages = map[ErrorKind]string{
	KindUnknown:            "unexpected failure",
	KindMalformedInput:     "malformed input",
	KindInvalidKeyMaterial: "invalid key material",
	KindWalletUnavailable:  "no wallet available",
	KindConnectionDenied:   "wallet connection denied",
	KindSignatureDenied:    "signature request denied",
	KindSignatureInvalid:   "signature failed verification",
	KindTimeout:            "wallet did not respond in time",
	KindCanceled:           "negotiation canceled",
}

var kindNames = map[ErrorKind]string{
	KindUnknown:            "Unknown",
	KindMalformedInput:     "MalformedInput",
	KindInvalidKeyMaterial: "InvalidKeyMaterial",
	KindWalletUnavailable:  "WalletUnavailable",
	KindConnectionDenied:   "ConnectionDenied",
	KindSignatureDenied:    "SignatureDenied",
	KindSignatureInvalid:   "SignatureInvalid",
	KindTimeout:            "Timeout",
	KindCanceled:           "Canceled",
}

// String returns the kind name, e.g. "SignatureDenied".
func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[KindUnknown]
}

// Message is the short user-facing text for the kind.
func (k ErrorKind) Message() string {
	if s, ok := kindMessages[k]; ok {
		return s
	}
	return kindMessages[KindUnknown]
}

// Error is the typed failure returned by every component. Err carries
// optional diagnostic detail (for example the provider's own error text)
// and must never wrap key or signature bytes.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.Message()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the package sentinels work
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Err == nil
}

// Sentinels for errors.Is.
var (
	ErrMalformedInput     = &Error{Kind: KindMalformedInput}
	ErrInvalidKeyMaterial = &Error{Kind: KindInvalidKeyMaterial}
	ErrWalletUnavailable  = &Error{Kind: KindWalletUnavailable}
	ErrConnectionDenied   = &Error{Kind: KindConnectionDenied}
	ErrSignatureDenied    = &Error{Kind: KindSignatureDenied}
	ErrSignatureInvalid   = &Error{Kind: KindSignatureInvalid}
	ErrTimeout            = &Error{Kind: KindTimeout}
	ErrCanceled           = &Error{Kind: KindCanceled}
)

// ErrNotFound is returned by session stores for unknown identities.
var ErrNotFound = errors.New("session not found")

// NewError builds an *Error with optional diagnostic cause.
func NewError(kind ErrorKind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

// KindOf extracts the kind of err, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// UserMessage returns the short, kind-specific text safe to display.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return KindOf(err).Message()
}
