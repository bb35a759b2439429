package fixture

import (
	"fmt"

	"keyshare/internal/domain"
	"keyshare/internal/protocol/signing"
)

// Snapshot accumulates a key-query response.
type Snapshot struct {
	resp domain.KeyQueryResponse
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{resp: domain.KeyQueryResponse{
		DeviceKeys:      map[domain.UserID]map[domain.DeviceID]domain.DeviceKeys{},
		MasterKeys:      map[domain.UserID]domain.CrossSigningKey{},
		SelfSigningKeys: map[domain.UserID]domain.CrossSigningKey{},
		UserSigningKeys: map[domain.UserID]domain.CrossSigningKey{},
	}}
}

// AddUser publishes u's cross-signing keys of the given usages, or all three
// when none are given.
func (s *Snapshot) AddUser(u *User, usages ...domain.KeyUsage) error {
	if len(usages) == 0 {
		usages = []domain.KeyUsage{domain.UsageMaster, domain.UsageSelfSigning, domain.UsageUserSigning}
	}
	for _, usage := range usages {
		rec, err := u.CrossSigningKey(usage)
		if err != nil {
			return err
		}
		s.SetCrossSigningKey(u.ID, usage, rec)
	}
	return nil
}

// SetCrossSigningKey stores rec as user's key of the given usage, replacing
// any existing record.
func (s *Snapshot) SetCrossSigningKey(user domain.UserID, usage domain.KeyUsage, rec domain.CrossSigningKey) {
	switch usage {
	case domain.UsageMaster:
		s.resp.MasterKeys[user] = rec
	case domain.UsageSelfSigning:
		s.resp.SelfSigningKeys[user] = rec
	case domain.UsageUserSigning:
		s.resp.UserSigningKeys[user] = rec
	}
}

// AddDevice publishes a device under its own user id.
func (s *Snapshot) AddDevice(dev domain.DeviceKeys) {
	devices := s.resp.DeviceKeys[dev.UserID]
	if devices == nil {
		devices = map[domain.DeviceID]domain.DeviceKeys{}
		s.resp.DeviceKeys[dev.UserID] = devices
	}
	devices[dev.DeviceID] = dev
}

// AddDevices generates and publishes one device per id with the same options.
func (s *Snapshot) AddDevices(u *User, ids []domain.DeviceID, opts ...DeviceOption) error {
	for _, id := range ids {
		dev, err := u.NewDevice(id, opts...)
		if err != nil {
			return err
		}
		s.AddDevice(dev)
	}
	return nil
}

// Verify has verifier's user-signing key sign target's published master key.
func (s *Snapshot) Verify(verifier, target *User) error {
	rec, ok := s.resp.MasterKeys[target.ID]
	if !ok {
		return fmt.Errorf("no master key published for %s", target.ID)
	}
	sigs, err := signing.Sign(rec, verifier.ID, verifier.UserSigning.B64(), verifier.UserSigning.Priv)
	if err != nil {
		return err
	}
	rec.Signatures = sigs
	s.resp.MasterKeys[target.ID] = rec
	return nil
}

// Response returns the accumulated key-query response.
func (s *Snapshot) Response() domain.KeyQueryResponse { return s.resp }
