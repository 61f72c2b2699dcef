// Package phantom talks to a wallet bridge that exposes a Phantom-compatible
// provider surface over HTTP.
//
// Endpoints (JSON):
//
//	GET  /v1/status       {"isPhantom":true,"isConnected":false}
//	POST /v1/connect      -> {"publicKey":"<base58>"}
//	POST /v1/signMessage  {"message":"<base64>","display":"utf8"}
//	                      -> {"signature":"<base64>","publicKey":"<base58>"}
//	POST /v1/disconnect
//
// Failures carry {"error":{"code":4001,"message":"..."}} using the provider
// error codes of injected wallets (4001 user rejected, 4100 unauthorized).
// Non-2xx responses are mapped onto the domain error kinds so the session
// negotiator never sees transport details as control flow.
package phantom
