package signing

import "errors"

var (
	// ErrSignatureMissing is returned when the signer has no entry for the key.
	ErrSignatureMissing = errors.New("signature missing")
	// ErrSignatureInvalid is returned when the signature does not verify.
	ErrSignatureInvalid = errors.New("signature invalid")
	// ErrSignatureMalformed is returned when the signature is not a base64
	// Ed25519 signature.
	ErrSignatureMalformed = errors.New("signature malformed")
	// ErrKeyMalformed is returned when the signer's public key does not decode
	// to an Ed25519 key.
	ErrKeyMalformed = errors.New("public key malformed")
	// ErrObjectMalformed is returned when the signed object is not a JSON
	// object.
	ErrObjectMalformed = errors.New("signed object malformed")
	// ErrUnknownAlgorithm is returned for key ids not prefixed "ed25519:".
	ErrUnknownAlgorithm = errors.New("unknown signing algorithm")
)

// IsMalformation reports whether err means the input was broken rather than
// merely unsigned.
func IsMalformation(err error) bool {
	return errors.Is(err, ErrSignatureMalformed) ||
		errors.Is(err, ErrKeyMalformed) ||
		errors.Is(err, ErrObjectMalformed) ||
		errors.Is(err, ErrUnknownAlgorithm)
}

// IsTrustAbsence reports whether err only means the signature is not there or
// does not check out.
func IsTrustAbsence(err error) bool {
	return errors.Is(err, ErrSignatureMissing) || errors.Is(err, ErrSignatureInvalid)
}
