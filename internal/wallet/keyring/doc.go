// Package keyring is an in-process wallet: it holds an Ed25519 seed and asks
// an Approver before connecting or signing, the way a browser extension
// shows a popup. walletd serves it over HTTP; tests use it directly.
package keyring
