package types

import "strings"

// UserID is an opaque, globally unique account identifier such as
// "@bob:localhost".
type UserID string

// String returns the string form of the user id.
func (u UserID) String() string { return string(u) }

// DeviceID identifies a device within one user's device set.
type DeviceID string

// String returns the string form of the device id.
func (d DeviceID) String() string { return string(d) }

// Algorithm names a key algorithm as used in key ids.
type Algorithm string

const (
	AlgorithmEd25519    Algorithm = "ed25519"
	AlgorithmCurve25519 Algorithm = "curve25519"
)

// Message encryption algorithms advertised by devices.
const (
	AlgorithmOlmV1    = "m.olm.v1.curve25519-aes-sha2"
	AlgorithmMegolmV1 = "m.megolm.v1.aes-sha2"
)

// KeyID is an "<algorithm>:<identifier>" pair used as a key in key maps and
// signature blocks.
type KeyID string

// NewKeyID joins an algorithm and identifier.
func NewKeyID(alg Algorithm, id string) KeyID {
	return KeyID(string(alg) + ":" + id)
}

// Parse splits the key id. ok is false when there is no separator.
func (k KeyID) Parse() (alg Algorithm, id string, ok bool) {
	a, i, found := strings.Cut(string(k), ":")
	if !found {
		return "", "", false
	}
	return Algorithm(a), i, true
}

// Algorithm returns the algorithm prefix, or "" if the id is unqualified.
func (k KeyID) Algorithm() Algorithm {
	alg, _, _ := k.Parse()
	return alg
}

// String returns the string form of the key id.
func (k KeyID) String() string { return string(k) }

// Fingerprint is a short digest presented to users for comparison.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }
