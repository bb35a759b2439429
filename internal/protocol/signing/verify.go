package signing

import (
	"crypto/ed25519"
	"fmt"

	"keyshare/internal/crypto"
	"keyshare/internal/domain"
)

// Signed is an object carrying a signature block over its own JSON.
type Signed interface {
	JSON() ([]byte, error)
	SignatureBlock() domain.Signatures
}

// Verify checks obj's signature by signer under keyID against publicKey.
//
// keyID may be bare ("DEVICEID", "<base64 key>") or qualified
// ("ed25519:DEVICEID"); only ed25519 is accepted. publicKey is unpadded
// base64.
func Verify(obj Signed, signer domain.UserID, keyID string, publicKey string) error {
	kid, err := ed25519KeyID(keyID)
	if err != nil {
		return err
	}

	encoded, ok := obj.SignatureBlock().Get(signer, kid)
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrSignatureMissing, signer, kid)
	}
	sig, err := crypto.DecodeB64(encoded)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("%w: %s %s", ErrSignatureMalformed, signer, kid)
	}
	pub, err := crypto.ParseEd25519Public(publicKey)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrKeyMalformed, signer, kid, err)
	}
	msg, err := signingBytes(obj)
	if err != nil {
		return err
	}
	if !crypto.VerifyEd25519(pub, msg, sig) {
		return fmt.Errorf("%w: %s %s", ErrSignatureInvalid, signer, kid)
	}
	return nil
}

// VerifyDeviceSelfSignature checks that a device signed itself with its own
// Ed25519 key.
func VerifyDeviceSelfSignature(device domain.DeviceKeys) error {
	pub, ok := device.Ed25519()
	if !ok {
		return fmt.Errorf("%w: device %s has no ed25519 key", ErrKeyMalformed, device.DeviceID)
	}
	return Verify(device, device.UserID, string(device.DeviceID), pub)
}

// ed25519KeyID qualifies a bare key id and rejects other algorithms.
func ed25519KeyID(keyID string) (domain.KeyID, error) {
	kid := domain.KeyID(keyID)
	alg, _, ok := kid.Parse()
	if !ok {
		return domain.NewKeyID(domain.AlgorithmEd25519, keyID), nil
	}
	if alg != domain.AlgorithmEd25519 {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}
	return kid, nil
}

func signingBytes(obj Signed) ([]byte, error) {
	raw, err := obj.JSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrObjectMalformed, err)
	}
	msg, err := crypto.SigningBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrObjectMalformed, err)
	}
	return msg, nil
}
