// Package signing checks and produces the Ed25519 signatures carried in
// device-key and cross-signing-key signature blocks.
//
// # Signed bytes
//
// A signature covers the canonical JSON of the object with its "signatures"
// and "unsigned" members removed. Objects decoded from a key-query response
// are canonicalised from the bytes they were decoded from.
//
// # Errors
//
// Verify distinguishes trust absence from malformation:
//
//   - ErrSignatureMissing and ErrSignatureInvalid mean "not signed by that
//     key". Callers building trust treat them as a plain false.
//   - ErrSignatureMalformed, ErrKeyMalformed, ErrObjectMalformed and
//     ErrUnknownAlgorithm mean the input itself is broken. They are never
//     skipped silently; IsMalformation reports them.
package signing
