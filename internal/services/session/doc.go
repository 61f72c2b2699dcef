// Package session negotiates wallet sessions.
//
// A negotiation resolves key material, obtains a public identity, builds a
// canonical challenge, gets it signed, verifies the signature and only then
// materialises a SessionRecord, which it stores keyed by identity.
//
//	Idle -> ResolvingKey -> DirectSigning ---------------------------> Validating -> Established
//	                     \-> AwaitingWalletConnect -> AwaitingSignature -/         \-> Failed(kind)
//
// Every call starts from Idle and ends in exactly one terminal state. There
// is no internal retry; callers negotiate again after a failure.
package session
