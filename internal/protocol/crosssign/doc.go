// Package crosssign derives trust from the cross-signing keys in one
// key-query snapshot.
//
// Two edges matter:
//
//	device ──signed by──▶ owner's self-signing key
//	other user's master key ──signed by──▶ local user's user-signing key
//
// A device is cross-signed when the first edge holds. A user is verified when
// the second holds and the local user's master key signs itself. Verifying a
// user once therefore vouches for every device that user cross-signs.
//
// A Graph is built from a single snapshot and never patched; a new snapshot
// needs a new Graph. Broken links yield false, not errors: the error-returning
// forms (DeviceTrust, UserTrust) exist so callers can tell malformed input
// from plain absence of trust.
package crosssign
