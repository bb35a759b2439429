package types

import "encoding/json"

// DeviceKeys is one device's public identity as returned by a key query.
//
// Values decoded from JSON keep the bytes they were decoded from, so fields a
// server sent that this type does not model stay covered by signature checks.
// Build a new value rather than editing a decoded one.
type DeviceKeys struct {
	UserID     UserID           `json:"user_id"`
	DeviceID   DeviceID         `json:"device_id"`
	Algorithms []string         `json:"algorithms"`
	Keys       map[KeyID]string `json:"keys"`
	Signatures Signatures       `json:"signatures,omitempty"`
	Dehydrated bool             `json:"dehydrated,omitempty"`
	Unsigned   map[string]any   `json:"unsigned,omitempty"`
	raw        json.RawMessage
}

// Ed25519 returns the device's base64 Ed25519 signing key.
func (d DeviceKeys) Ed25519() (string, bool) {
	k, ok := d.Keys[NewKeyID(AlgorithmEd25519, string(d.DeviceID))]
	return k, ok
}

// Curve25519 returns the device's base64 Curve25519 identity key.
func (d DeviceKeys) Curve25519() (string, bool) {
	k, ok := d.Keys[NewKeyID(AlgorithmCurve25519, string(d.DeviceID))]
	return k, ok
}

// JSON returns the bytes the device was decoded from, or its encoding when it
// was built in code.
func (d DeviceKeys) JSON() ([]byte, error) {
	if len(d.raw) > 0 {
		return d.raw, nil
	}
	type alias DeviceKeys
	return json.Marshal(alias(d))
}

// MarshalJSON re-emits decoded bytes unchanged.
func (d DeviceKeys) MarshalJSON() ([]byte, error) { return d.JSON() }

// UnmarshalJSON decodes the device and retains the input bytes.
func (d *DeviceKeys) UnmarshalJSON(data []byte) error {
	type alias DeviceKeys
	var aux alias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = DeviceKeys(aux)
	d.raw = append(json.RawMessage(nil), data...)
	return nil
}

// SignatureBlock returns the device's signatures.
func (d DeviceKeys) SignatureBlock() Signatures { return d.Signatures }
