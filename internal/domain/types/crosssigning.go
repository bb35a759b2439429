package types

import "encoding/json"

// KeyUsage tags what a cross-signing key is for.
type KeyUsage string

const (
	UsageMaster      KeyUsage = "master"
	UsageSelfSigning KeyUsage = "self_signing"
	UsageUserSigning KeyUsage = "user_signing"
)

// CrossSigningKey is one master, self-signing or user-signing key record.
//
// On the wire usage is a list; a well-formed record carries exactly one
// usage and exactly one "ed25519:<key>" entry whose identifier is the key's
// own base64 value. Decoded values retain their input bytes like DeviceKeys.
type CrossSigningKey struct {
	UserID     UserID           `json:"user_id"`
	Usage      []KeyUsage       `json:"usage"`
	Keys       map[KeyID]string `json:"keys"`
	Signatures Signatures       `json:"signatures,omitempty"`
	raw        json.RawMessage
}

// HasUsage reports whether the record claims exactly the given usage.
func (k CrossSigningKey) HasUsage(u KeyUsage) bool {
	return len(k.Usage) == 1 && k.Usage[0] == u
}

// Key returns the single key entry. ok is false unless there is exactly one.
func (k CrossSigningKey) Key() (id KeyID, pub string, ok bool) {
	if len(k.Keys) != 1 {
		return "", "", false
	}
	for id, pub = range k.Keys {
	}
	return id, pub, true
}

// JSON returns the bytes the key was decoded from, or its encoding when it was
// built in code.
func (k CrossSigningKey) JSON() ([]byte, error) {
	if len(k.raw) > 0 {
		return k.raw, nil
	}
	type alias CrossSigningKey
	return json.Marshal(alias(k))
}

// MarshalJSON re-emits decoded bytes unchanged.
func (k CrossSigningKey) MarshalJSON() ([]byte, error) { return k.JSON() }

// UnmarshalJSON decodes the key and retains the input bytes.
func (k *CrossSigningKey) UnmarshalJSON(data []byte) error {
	type alias CrossSigningKey
	var aux alias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*k = CrossSigningKey(aux)
	k.raw = append(json.RawMessage(nil), data...)
	return nil
}

// SignatureBlock returns the key's signatures.
func (k CrossSigningKey) SignatureBlock() Signatures { return k.Signatures }
