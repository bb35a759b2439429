package fixture

import (
	"fmt"

	"keyshare/internal/crypto"
	"keyshare/internal/domain"
	"keyshare/internal/protocol/signing"
	"keyshare/internal/util/memzero"
)

// KeyPair is an Ed25519 cross-signing key pair.
type KeyPair struct {
	Priv domain.Ed25519Private
	Pub  domain.Ed25519Public
}

// NewKeyPair generates a key pair.
func NewKeyPair() (KeyPair, error) {
	priv, pub, err := crypto.GenerateEd25519()
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{Priv: priv, Pub: pub}, nil
}

// B64 returns the public key in wire form, which is also its key id.
func (k KeyPair) B64() string { return crypto.B64(k.Pub.Slice()) }

// User is a generated account with a full set of cross-signing keys.
type User struct {
	ID          domain.UserID
	Master      KeyPair
	SelfSigning KeyPair
	UserSigning KeyPair
}

// NewUser generates cross-signing keys for id.
func NewUser(id domain.UserID) (*User, error) {
	u := &User{ID: id}
	for _, kp := range []*KeyPair{&u.Master, &u.SelfSigning, &u.UserSigning} {
		var err error
		if *kp, err = NewKeyPair(); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// Wipe zeroes the user's private keys.
func (u *User) Wipe() {
	memzero.ZeroAll(u.Master.Priv[:], u.SelfSigning.Priv[:], u.UserSigning.Priv[:])
}

// CrossSigningKey returns the user's record for usage, signed by the master
// key. The master record is therefore self-signed.
func (u *User) CrossSigningKey(usage domain.KeyUsage) (domain.CrossSigningKey, error) {
	var kp KeyPair
	switch usage {
	case domain.UsageMaster:
		kp = u.Master
	case domain.UsageSelfSigning:
		kp = u.SelfSigning
	case domain.UsageUserSigning:
		kp = u.UserSigning
	default:
		return domain.CrossSigningKey{}, fmt.Errorf("unknown key usage %q", usage)
	}
	rec := domain.CrossSigningKey{
		UserID: u.ID,
		Usage:  []domain.KeyUsage{usage},
		Keys: map[domain.KeyID]string{
			domain.NewKeyID(domain.AlgorithmEd25519, kp.B64()): kp.B64(),
		},
	}
	sigs, err := signing.Sign(rec, u.ID, u.Master.B64(), u.Master.Priv)
	if err != nil {
		return domain.CrossSigningKey{}, err
	}
	rec.Signatures = sigs
	return rec, nil
}

type deviceConfig struct {
	dehydrated     bool
	crossSigned    bool
	tamperCross    bool
	dropCurve25519 bool
}

// DeviceOption adjusts a generated device.
type DeviceOption func(*deviceConfig)

// Dehydrated marks the device as a dehydrated backup device. Like the devices
// servers hand out for dehydration, it carries only its self-signature.
func Dehydrated() DeviceOption {
	return func(c *deviceConfig) {
		c.dehydrated = true
		c.crossSigned = false
	}
}

// NotCrossSigned leaves out the self-signing key's signature.
func NotCrossSigned() DeviceOption {
	return func(c *deviceConfig) { c.crossSigned = false }
}

// TamperedCrossSignature corrupts the self-signing key's signature so it
// decodes but does not verify.
func TamperedCrossSignature() DeviceOption {
	return func(c *deviceConfig) { c.tamperCross = true }
}

// WithoutCurve25519 omits the device's Curve25519 identity key.
func WithoutCurve25519() DeviceOption {
	return func(c *deviceConfig) { c.dropCurve25519 = true }
}

// NewDevice generates a self-signed device for u. Unless an option says
// otherwise it is also signed by u's self-signing key.
func (u *User) NewDevice(id domain.DeviceID, opts ...DeviceOption) (domain.DeviceKeys, error) {
	cfg := deviceConfig{crossSigned: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	edPriv, edPub, err := crypto.GenerateEd25519()
	if err != nil {
		return domain.DeviceKeys{}, err
	}
	defer memzero.Zero(edPriv[:])
	curvePriv, curvePub, err := crypto.GenerateCurve25519()
	if err != nil {
		return domain.DeviceKeys{}, err
	}
	memzero.Zero(curvePriv[:])

	dev := domain.DeviceKeys{
		UserID:     u.ID,
		DeviceID:   id,
		Algorithms: []string{domain.AlgorithmOlmV1, domain.AlgorithmMegolmV1},
		Keys: map[domain.KeyID]string{
			domain.NewKeyID(domain.AlgorithmEd25519, string(id)): crypto.B64(edPub.Slice()),
		},
		Dehydrated: cfg.dehydrated,
	}
	if !cfg.dropCurve25519 {
		dev.Keys[domain.NewKeyID(domain.AlgorithmCurve25519, string(id))] = crypto.B64(curvePub.Slice())
	}

	if dev.Signatures, err = signing.Sign(dev, u.ID, string(id), edPriv); err != nil {
		return domain.DeviceKeys{}, err
	}
	if cfg.crossSigned || cfg.tamperCross {
		if dev.Signatures, err = signing.Sign(dev, u.ID, u.SelfSigning.B64(), u.SelfSigning.Priv); err != nil {
			return domain.DeviceKeys{}, err
		}
	}
	if cfg.tamperCross {
		kid := domain.NewKeyID(domain.AlgorithmEd25519, u.SelfSigning.B64())
		if dev.Signatures, err = Tamper(dev.Signatures, u.ID, kid); err != nil {
			return domain.DeviceKeys{}, err
		}
	}
	return dev, nil
}

// Tamper returns a copy of sigs whose signer/keyID entry still decodes but no
// longer verifies.
func Tamper(sigs domain.Signatures, signer domain.UserID, keyID domain.KeyID) (domain.Signatures, error) {
	encoded, ok := sigs.Get(signer, keyID)
	if !ok {
		return nil, fmt.Errorf("no signature by %s under %s", signer, keyID)
	}
	raw, err := crypto.DecodeB64(encoded)
	if err != nil {
		return nil, err
	}
	raw[0] ^= 0x01
	return sigs.With(signer, keyID, crypto.B64(raw)), nil
}
