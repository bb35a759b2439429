// Package commands defines the trustctl CLI and wires dependencies for subcommands.
//
// Commands
//
//   - resolve      Print the devices a group session key may be shared with
//   - inspect      Show the cross-signing trust state of every user and device
//   - pull         Query the directory and store the response as a named snapshot
//   - fixture      Write a generated test snapshot
//   - fingerprint  Print the BLAKE3 fingerprint of a snapshot
//
// Keys come from one of three sources: a snapshot file (--snapshot), a stored
// snapshot (--from), or a live directory (--directory or
// KEYSHARE_DIRECTORY_URL).
//
// # Implementation
//
// The root command loads Config from the environment, applies flag overrides
// and builds the dependency graph (directory client, snapshot store, trust
// cache, share service) before any subcommand runs.
package commands
