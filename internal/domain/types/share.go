package types

import (
	"fmt"
	"strings"
)

// ShareStrategy selects which devices may receive a group session key.
type ShareStrategy int

const (
	// AllDevices shares with every live device; only dehydrated devices are
	// left out.
	AllDevices ShareStrategy = iota + 1
	// ErrorOnVerifiedUserProblem fails the whole share when a verified user
	// has a device their self-signing key has not signed.
	ErrorOnVerifiedUserProblem
	// OnlyTrustedDevices silently drops devices that are not cross-signed.
	OnlyTrustedDevices
)

var strategyNames = map[ShareStrategy]string{
	AllDevices:                 "all-devices",
	ErrorOnVerifiedUserProblem: "error-on-verified-user-problem",
	OnlyTrustedDevices:         "only-trusted-devices",
}

// String returns the flag/config spelling of the strategy.
func (s ShareStrategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("ShareStrategy(%d)", int(s))
}

// ParseShareStrategy accepts the String form, case-insensitively.
func ParseShareStrategy(v string) (ShareStrategy, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for s, n := range strategyNames {
		if n == v {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown share strategy %q", v)
}

// DeviceRef names one recipient device.
type DeviceRef struct {
	UserID   UserID   `json:"user_id"`
	DeviceID DeviceID `json:"device_id"`
}

// Less orders refs by (UserID, DeviceID).
func (r DeviceRef) Less(o DeviceRef) bool {
	if r.UserID != o.UserID {
		return r.UserID < o.UserID
	}
	return r.DeviceID < o.DeviceID
}

// String returns "user/device".
func (r DeviceRef) String() string { return string(r.UserID) + "/" + string(r.DeviceID) }

// ExclusionReason says why a device was left out of a resolution.
type ExclusionReason string

const (
	ExcludedDehydrated ExclusionReason = "dehydrated"
	ExcludedUnsigned   ExclusionReason = "missing_signature"
	ExcludedMalformed  ExclusionReason = "malformed_keys"
)

// Issue records one excluded device.
type Issue struct {
	Device DeviceRef       `json:"device"`
	Reason ExclusionReason `json:"reason"`
	Detail string          `json:"detail,omitempty"`
}

// Diagnostics counts devices excluded from a resolution, by reason.
type Diagnostics struct {
	Dehydrated int     `json:"dehydrated"`
	Unsigned   int     `json:"missing_signature"`
	Malformed  int     `json:"malformed_keys"`
	Issues     []Issue `json:"issues,omitempty"`
}

// Add records an issue and bumps its counter.
func (d *Diagnostics) Add(is Issue) {
	switch is.Reason {
	case ExcludedDehydrated:
		d.Dehydrated++
	case ExcludedUnsigned:
		d.Unsigned++
	case ExcludedMalformed:
		d.Malformed++
	}
	d.Issues = append(d.Issues, is)
}

// Excluded returns the total number of excluded devices.
func (d Diagnostics) Excluded() int { return d.Dehydrated + d.Unsigned + d.Malformed }

// Resolution is the outcome of one share-strategy resolution: the ordered
// recipient devices and what was left out.
//
// Consumers must perform at most one key-wrap operation at a time per
// (user, device) pair; the ratchet state behind each pair is not safe for
// concurrent use.
type Resolution struct {
	Devices     []DeviceRef `json:"devices"`
	Diagnostics Diagnostics `json:"diagnostics"`
}
