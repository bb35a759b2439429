package crosssign

import (
	"errors"
	"fmt"

	"keyshare/internal/domain"
	"keyshare/internal/protocol/signing"
)

var (
	// ErrKeyNotPublished is returned when the snapshot has no record of the
	// needed cross-signing key.
	ErrKeyNotPublished = errors.New("cross-signing key not published")
	// ErrKeyRecordMalformed is returned for records with the wrong owner,
	// more than one usage, or other than a single ed25519 key.
	ErrKeyRecordMalformed = errors.New("cross-signing key record malformed")
)

// IsMalformation reports whether err came from broken input rather than
// missing trust.
func IsMalformation(err error) bool {
	return errors.Is(err, ErrKeyRecordMalformed) || signing.IsMalformation(err)
}

// Graph answers trust questions over one key-query snapshot. It holds no
// mutable state and is safe for concurrent use.
type Graph struct {
	resp domain.KeyQueryResponse
}

// New returns a Graph over resp.
func New(resp domain.KeyQueryResponse) *Graph {
	return &Graph{resp: resp}
}

// csKey is a validated cross-signing key record.
type csKey struct {
	record domain.CrossSigningKey
	keyID  string
	public string
}

func (g *Graph) key(user domain.UserID, usage domain.KeyUsage) (csKey, error) {
	rec, ok := g.resp.CrossSigningKey(user, usage)
	if !ok {
		return csKey{}, fmt.Errorf("%w: %s %s", ErrKeyNotPublished, user, usage)
	}
	if rec.UserID != user {
		return csKey{}, fmt.Errorf("%w: %s key listed for %s belongs to %s", ErrKeyRecordMalformed, usage, user, rec.UserID)
	}
	if !rec.HasUsage(usage) {
		return csKey{}, fmt.Errorf("%w: %s key for %s has usage %v", ErrKeyRecordMalformed, usage, user, rec.Usage)
	}
	kid, pub, ok := rec.Key()
	if !ok {
		return csKey{}, fmt.Errorf("%w: %s key for %s has %d keys", ErrKeyRecordMalformed, usage, user, len(rec.Keys))
	}
	alg, id, _ := kid.Parse()
	if alg != domain.AlgorithmEd25519 || id != pub {
		return csKey{}, fmt.Errorf("%w: %s key for %s has key id %q", ErrKeyRecordMalformed, usage, user, kid)
	}
	return csKey{record: rec, keyID: string(kid), public: pub}, nil
}

// DeviceTrust returns nil when device carries a valid signature by user's
// self-signing key.
func (g *Graph) DeviceTrust(user domain.UserID, device domain.DeviceKeys) error {
	ssk, err := g.key(user, domain.UsageSelfSigning)
	if err != nil {
		return err
	}
	return signing.Verify(device, ssk.record.UserID, ssk.keyID, ssk.public)
}

// IsDeviceCrossSigned reports whether DeviceTrust succeeds.
func (g *Graph) IsDeviceCrossSigned(user domain.UserID, device domain.DeviceKeys) bool {
	return g.DeviceTrust(user, device) == nil
}

// UserTrust returns nil when local has verified other: local's user-signing
// key signs other's master key, and local's master key signs itself. Every
// user trusts themself.
func (g *Graph) UserTrust(local, other domain.UserID) error {
	if local == other {
		return nil
	}
	usk, err := g.key(local, domain.UsageUserSigning)
	if err != nil {
		return err
	}
	theirs, err := g.key(other, domain.UsageMaster)
	if err != nil {
		return err
	}
	if err := signing.Verify(theirs.record, local, usk.keyID, usk.public); err != nil {
		return err
	}
	ours, err := g.key(local, domain.UsageMaster)
	if err != nil {
		return err
	}
	return signing.Verify(ours.record, local, ours.keyID, ours.public)
}

// IsUserVerified reports whether UserTrust succeeds.
func (g *Graph) IsUserVerified(local, other domain.UserID) bool {
	return g.UserTrust(local, other) == nil
}

// AnchorTrust returns nil when user's master key signs itself and every
// published self-signing and user-signing key of user is signed by it.
// It is informational; the device and user queries do not depend on it.
func (g *Graph) AnchorTrust(user domain.UserID) error {
	master, err := g.key(user, domain.UsageMaster)
	if err != nil {
		return err
	}
	if err := signing.Verify(master.record, user, master.keyID, master.public); err != nil {
		return err
	}
	for _, usage := range []domain.KeyUsage{domain.UsageSelfSigning, domain.UsageUserSigning} {
		sub, err := g.key(user, usage)
		if errors.Is(err, ErrKeyNotPublished) {
			continue
		}
		if err != nil {
			return err
		}
		if err := signing.Verify(sub.record, user, master.keyID, master.public); err != nil {
			return fmt.Errorf("%s key: %w", usage, err)
		}
	}
	return nil
}

// IsIdentityAnchored reports whether AnchorTrust succeeds.
func (g *Graph) IsIdentityAnchored(user domain.UserID) bool {
	return g.AnchorTrust(user) == nil
}
