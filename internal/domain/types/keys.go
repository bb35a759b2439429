package types

// Curve25519Public is a Curve25519 public key.
type Curve25519Public [32]byte

// Slice returns the key as a []byte.
func (p Curve25519Public) Slice() []byte { return p[:] }

// Curve25519Private is a Curve25519 private key.
type Curve25519Private [32]byte

// Slice returns the key as a []byte.
func (k Curve25519Private) Slice() []byte { return k[:] }

// Ed25519Public is an Ed25519 signing public key.
type Ed25519Public [32]byte

// Slice returns the key as a []byte.
func (p Ed25519Public) Slice() []byte { return p[:] }

// Ed25519Private is an Ed25519 signing private key (ed25519.PrivateKey layout).
type Ed25519Private [64]byte

// Slice returns the key as a []byte.
func (k Ed25519Private) Slice() []byte { return k[:] }
