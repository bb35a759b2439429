package crypto

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/curve25519"

	"keyshare/internal/domain"
)

// GenerateCurve25519 returns a fresh Curve25519 key pair.
// The private key is clamped per RFC 7748.
func GenerateCurve25519() (priv domain.Curve25519Private, pub domain.Curve25519Public, err error) {
	if _, err = rand.Read(priv[:]); err != nil {
		return
	}
	clamp(&priv)
	pb, err := curve25519.X25519(priv.Slice(), curve25519.Basepoint)
	if err != nil {
		return
	}
	copy(pub[:], pb)
	return
}

// ParseCurve25519Public decodes a base64 Curve25519 identity key.
func ParseCurve25519Public(s string) (domain.Curve25519Public, error) {
	var pub domain.Curve25519Public
	b, err := DecodeB64(s)
	if err != nil {
		return pub, err
	}
	if len(b) != curve25519.PointSize {
		return pub, fmt.Errorf("curve25519 public key: want %d bytes, got %d", curve25519.PointSize, len(b))
	}
	copy(pub[:], b)
	return pub, nil
}

func clamp(k *domain.Curve25519Private) {
	kb := k[:]
	kb[0] &= 248
	kb[31] &= 127
	kb[31] |= 64
}
