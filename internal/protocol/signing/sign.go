package signing

import (
	"keyshare/internal/crypto"
	"keyshare/internal/domain"
)

// Sign signs obj as signer under keyID and returns obj's signature block with
// the new entry added. obj is not modified.
func Sign(
	obj Signed,
	signer domain.UserID,
	keyID string,
	priv domain.Ed25519Private,
) (domain.Signatures, error) {
	kid, err := ed25519KeyID(keyID)
	if err != nil {
		return nil, err
	}
	msg, err := signingBytes(obj)
	if err != nil {
		return nil, err
	}
	sig := crypto.SignEd25519(priv, msg)
	return obj.SignatureBlock().With(signer, kid, crypto.B64(sig)), nil
}
