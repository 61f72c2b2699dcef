// Package store provides persistence for forgeauth.
//
// Session records:
//   - MemorySessionStore keeps records for the life of the process. Reads run
//     concurrently; a Put replaces any record for the same identity. Expired
//     records stay readable until an optional sweep evicts them.
//   - RedisSessionStore shares records between processes through Redis.
//
// Key material:
//   - KeystoreFile keeps the operator's Ed25519 seed on disk, sealed with
//     ChaCha20-Poly1305 under a scrypt-derived key, written atomically.
package store
