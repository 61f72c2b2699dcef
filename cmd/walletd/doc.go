// Command walletd runs a local wallet bridge that speaks the
// Phantom-compatible HTTP protocol over a key held in the forgeauth
// keystore. forgeauth negotiate connects to it when no key is configured.
//
// HTTP API
//
//	GET  /v1/status
//	    Report whether the wallet is present and connected, plus its public key.
//
//	POST /v1/connect
//	    Ask the operator to approve a connection; returns the base58 public key.
//	    Repeated calls while connected return the same key without prompting.
//
//	POST /v1/signMessage { "message": <base64>, "display": "utf8" }
//	    Ask the operator to approve signing; returns a base64 signature.
//
//	POST /v1/disconnect
//	    Drop the connection. The next connect prompts again.
//
//	GET  /metrics
//	    Prometheus metrics.
//
// Behaviour
//
//   - Prompts are answered on the terminal (y/N) unless --auto-approve is set.
//   - Connect and sign requests are throttled by a token bucket (--rate, --burst).
//   - The default listen address is 127.0.0.1:8787.
package main
