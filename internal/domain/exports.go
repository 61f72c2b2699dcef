package domain

import (
	interfaces "forgeauth/internal/domain/interfaces"
	types "forgeauth/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	PublicIdentity    = types.PublicIdentity
	Seed              = types.Seed
	Signature         = types.Signature
	Fingerprint       = types.Fingerprint
	Challenge         = types.Challenge
	SessionRecord     = types.SessionRecord
	NegotiationConfig = types.NegotiationConfig
	Error             = types.Error
	ErrorKind         = types.ErrorKind
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	WalletProvider  = interfaces.WalletProvider
	SessionService  = interfaces.SessionService
	IdentityService = interfaces.IdentityService
	SessionStore    = interfaces.SessionStore
	KeyStore        = interfaces.KeyStore
)

const (
	SeedSize      = types.SeedSize
	PublicKeySize = types.PublicKeySize
	SignatureSize = types.SignatureSize

	DefaultSessionTTL = types.DefaultSessionTTL
)

const (
	KindUnknown            = types.KindUnknown
	KindMalformedInput     = types.KindMalformedInput
	KindInvalidKeyMaterial = types.KindInvalidKeyMaterial
	KindWalletUnavailable  = types.KindWalletUnavailable
	KindConnectionDenied   = types.KindConnectionDenied
	KindSignatureDenied    = types.KindSignatureDenied
	KindSignatureInvalid   = types.KindSignatureInvalid
	KindTimeout            = types.KindTimeout
	KindCanceled           = types.KindCanceled
)

var (
	ErrMalformedInput     = types.ErrMalformedInput
	ErrInvalidKeyMaterial = types.ErrInvalidKeyMaterial
	ErrWalletUnavailable  = types.ErrWalletUnavailable
	ErrConnectionDenied   = types.ErrConnectionDenied
	ErrSignatureDenied    = types.ErrSignatureDenied
	ErrSignatureInvalid   = types.ErrSignatureInvalid
	ErrTimeout            = types.ErrTimeout
	ErrCanceled           = types.ErrCanceled
	ErrNotFound           = types.ErrNotFound
)

var (
	NewError    = types.NewError
	KindOf      = types.KindOf
	UserMessage = types.UserMessage
)
