// Package commands defines the forgeauth CLI and wires dependencies for subcommands.
//
// Commands
//
//   - negotiate       Prove wallet ownership and establish a session
//   - identity init   Create and encrypt a local signing key
//   - identity show   Print the stored identity and fingerprint
//   - session show    Print the stored session for an identity
//   - session revoke  Delete the stored session for an identity
//   - codec encode    Re-encode hex bytes as base58 or base64
//   - codec decode    Decode base58 or base64 text to hex
//
// # Implementation
//
// The root command loads the config file and environment and builds the
// dependency graph (stores, wallet provider, services) before any subcommand
// runs, so handlers share one app context.
package commands
