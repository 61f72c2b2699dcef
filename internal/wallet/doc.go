// Package wallet holds the pieces shared by every wallet provider variant.
//
// Conn is the connection gate: it turns a provider's dial function into an
// idempotent, concurrency-safe Connect. Concurrent callers share one
// in-flight dial; once connected, later calls return the cached identity
// without prompting again. A caller that gives up (deadline or cancel) only
// abandons its own wait, and an attempt abandoned by its initiator is
// restarted by any caller that is still waiting.
//
// Variants live in subpackages:
//
//   - keyring   in-process wallet holding an Ed25519 seed behind an approver
//   - phantom   HTTP client for a Phantom-compatible wallet bridge
//
// Unavailable is the provider used when no wallet is installed.
package wallet
