package devicefilter

import (
	"errors"
	"fmt"
	"slices"

	"keyshare/internal/crypto"
	"keyshare/internal/domain"
)

var (
	// ErrDeviceKeysIncomplete is returned for devices lacking a usable
	// Curve25519 or Ed25519 key.
	ErrDeviceKeysIncomplete = errors.New("device keys incomplete")
	// ErrDeviceIdentityMismatch is returned when a device record names a
	// different user or device than the entry it was listed under.
	ErrDeviceIdentityMismatch = errors.New("device identity mismatch")
)

// Rejected is a malformed device left out of the live set.
type Rejected struct {
	DeviceID domain.DeviceID
	Err      error
}

// Partitioned is the classification of one user's devices. Each slice is
// sorted by device id and every input device appears in exactly one of them.
type Partitioned struct {
	Live       []domain.DeviceID
	Dehydrated []domain.DeviceID
	Rejected   []Rejected
}

// Partition classifies the devices listed for user.
func Partition(user domain.UserID, devices map[domain.DeviceID]domain.DeviceKeys) Partitioned {
	var p Partitioned
	for _, id := range sortedIDs(devices) {
		dev := devices[id]
		if dev.Dehydrated {
			p.Dehydrated = append(p.Dehydrated, id)
			continue
		}
		if err := checkUsable(user, id, dev); err != nil {
			p.Rejected = append(p.Rejected, Rejected{DeviceID: id, Err: err})
			continue
		}
		p.Live = append(p.Live, id)
	}
	return p
}

func checkUsable(user domain.UserID, id domain.DeviceID, dev domain.DeviceKeys) error {
	if dev.UserID != user || dev.DeviceID != id {
		return fmt.Errorf("%w: listed as %s/%s, claims %s/%s",
			ErrDeviceIdentityMismatch, user, id, dev.UserID, dev.DeviceID)
	}
	ed, ok := dev.Ed25519()
	if !ok {
		return fmt.Errorf("%w: no ed25519 key", ErrDeviceKeysIncomplete)
	}
	if _, err := crypto.ParseEd25519Public(ed); err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceKeysIncomplete, err)
	}
	curve, ok := dev.Curve25519()
	if !ok {
		return fmt.Errorf("%w: no curve25519 key", ErrDeviceKeysIncomplete)
	}
	if _, err := crypto.ParseCurve25519Public(curve); err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceKeysIncomplete, err)
	}
	return nil
}

func sortedIDs(devices map[domain.DeviceID]domain.DeviceKeys) []domain.DeviceID {
	ids := make([]domain.DeviceID, 0, len(devices))
	for id := range devices {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
