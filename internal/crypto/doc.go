// Package crypto exposes the primitives the trust core is built on.
//
// Contents
//
//   - Ed25519 key generation, signing and verification (GenerateEd25519,
//     SignEd25519, VerifyEd25519, ParseEd25519Public)
//   - Curve25519 identity key generation and parsing (GenerateCurve25519,
//     ParseCurve25519Public)
//   - Unpadded base64 as used on the key-query wire (B64, DecodeB64)
//   - Canonical JSON and the signed-bytes form of an object (CanonicalJSON,
//     SigningBytes)
//   - BLAKE3 fingerprints of keys and whole snapshots (Fingerprint,
//     SnapshotFingerprint)
//
// # Notes
//
// Fixed-size key types come from internal/domain. Private keys returned here
// are sensitive; callers wipe them with internal/util/memzero when done.
package crypto
