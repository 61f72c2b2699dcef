// Package bridge serves a domain.WalletProvider over the Phantom-compatible
// HTTP surface described in internal/wallet/phantom. walletd uses it to put
// an operator keyring behind the same API a browser extension exposes, so
// the phantom client can drive it unchanged.
//
// Connect and sign requests are throttled with a token bucket so a
// misbehaving caller cannot flood the approver with prompts.
package bridge
