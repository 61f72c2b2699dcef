// Package keysource decides where a negotiation's signing capability comes
// from. Resolve inspects the caller's configuration exactly once and returns
// either a DirectKey holding operator-supplied seed bytes or WalletExtension,
// which defers identity and signing to a wallet provider.
//
// Resolution is pure: no I/O, no logging, and key bytes never reach error
// text.
package keysource
