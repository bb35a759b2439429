package crypto

import (
	"encoding/json"
	"fmt"

	"github.com/matrix-org/gomatrixserverlib"
)

// CanonicalJSON re-encodes a JSON document with sorted keys and no
// insignificant whitespace.
func CanonicalJSON(doc []byte) ([]byte, error) {
	return gomatrixserverlib.CanonicalJSON(doc)
}

// SigningBytes returns the bytes a signature over obj covers: the canonical
// JSON of the object with its "signatures" and "unsigned" members removed.
func SigningBytes(obj []byte) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(obj, &fields); err != nil {
		return nil, fmt.Errorf("signed object: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("signed object: not a JSON object")
	}
	delete(fields, "signatures")
	delete(fields, "unsigned")
	stripped, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return CanonicalJSON(stripped)
}
