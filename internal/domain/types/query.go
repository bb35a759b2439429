package types

import "encoding/json"

// KeyQueryResponse is one directory lookup result. It is treated as an
// immutable snapshot: nothing in this module writes to it after decoding, and
// callers must not either while a resolution over it is running.
//
// Missing entries are legal; a user with devices but no master key simply
// cannot be trusted.
type KeyQueryResponse struct {
	Failures        map[string]json.RawMessage         `json:"failures,omitempty"`
	DeviceKeys      map[UserID]map[DeviceID]DeviceKeys `json:"device_keys"`
	MasterKeys      map[UserID]CrossSigningKey         `json:"master_keys,omitempty"`
	SelfSigningKeys map[UserID]CrossSigningKey         `json:"self_signing_keys,omitempty"`
	UserSigningKeys map[UserID]CrossSigningKey         `json:"user_signing_keys,omitempty"`
}

// Devices returns the device map for user.
func (r KeyQueryResponse) Devices(user UserID) (map[DeviceID]DeviceKeys, bool) {
	d, ok := r.DeviceKeys[user]
	return d, ok
}

// CrossSigningKey returns the user's record of the given usage.
func (r KeyQueryResponse) CrossSigningKey(user UserID, usage KeyUsage) (CrossSigningKey, bool) {
	var m map[UserID]CrossSigningKey
	switch usage {
	case UsageMaster:
		m = r.MasterKeys
	case UsageSelfSigning:
		m = r.SelfSigningKeys
	case UsageUserSigning:
		m = r.UserSigningKeys
	}
	k, ok := m[user]
	return k, ok
}
