package crypto

import (
	"encoding/hex"
	"encoding/json"

	"github.com/zeebo/blake3"

	"keyshare/internal/domain"
)

// Fingerprint returns a short hex fingerprint of a public key.
//
// It hashes with BLAKE3 and truncates to 10 bytes (20 hex chars).
func Fingerprint(pub []byte) domain.Fingerprint {
	sum := blake3.Sum256(pub)
	return domain.Fingerprint(hex.EncodeToString(sum[:10]))
}

// SnapshotFingerprint returns the full BLAKE3 digest of a key-query snapshot's
// canonical JSON. Two snapshots with the same keys, devices and signatures
// share a fingerprint regardless of map ordering or whitespace.
func SnapshotFingerprint(snapshot domain.KeyQueryResponse) (domain.Fingerprint, error) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	canon, err := CanonicalJSON(raw)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(canon)
	return domain.Fingerprint(hex.EncodeToString(sum[:])), nil
}
