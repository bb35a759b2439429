package types

// Signatures maps a signer to its "<algorithm>:<key id>" → base64 signature
// entries. Each entry is verifiable on its own.
type Signatures map[UserID]map[KeyID]string

// Get returns the signature for signer/keyID.
func (s Signatures) Get(signer UserID, keyID KeyID) (string, bool) {
	entries, ok := s[signer]
	if !ok {
		return "", false
	}
	sig, ok := entries[keyID]
	return sig, ok
}

// With returns a copy of s with the given entry added.
func (s Signatures) With(signer UserID, keyID KeyID, sig string) Signatures {
	out := make(Signatures, len(s)+1)
	for u, entries := range s {
		cp := make(map[KeyID]string, len(entries))
		for k, v := range entries {
			cp[k] = v
		}
		out[u] = cp
	}
	if out[signer] == nil {
		out[signer] = make(map[KeyID]string, 1)
	}
	out[signer][keyID] = sig
	return out
}
