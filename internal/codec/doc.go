// Package codec converts between binary payloads and their text forms:
// hex (with an optional 0x prefix on input), standard base64 and the base58
// alphabet used for wallet addresses. Every decoder fails with a
// domain.ErrMalformedInput error rather than returning partial output.
package codec
