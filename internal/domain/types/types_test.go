package types_test

import (
	"encoding/json"
	"testing"

	"keyshare/internal/domain/types"
)

func TestShareStrategy_ParseRoundTrip(t *testing.T) {
	for _, s := range []types.ShareStrategy{types.AllDevices, types.ErrorOnVerifiedUserProblem, types.OnlyTrustedDevices} {
		got, err := types.ParseShareStrategy(" " + s.String() + " ")
		if err != nil {
			t.Fatalf("ParseShareStrategy(%q): %v", s, err)
		}
		if got != s {
			t.Fatalf("got %v, want %v", got, s)
		}
	}
	if _, err := types.ParseShareStrategy("ALL-DEVICES"); err != nil {
		t.Fatalf("case-insensitive parse failed: %v", err)
	}
	if _, err := types.ParseShareStrategy("trusted"); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
	if s := types.ShareStrategy(0).String(); s != "ShareStrategy(0)" {
		t.Fatalf("zero value String() = %q", s)
	}
}

func TestKeyID_Parse(t *testing.T) {
	alg, id, ok := types.KeyID("ed25519:ABC:DEF").Parse()
	if !ok || alg != types.AlgorithmEd25519 || id != "ABC:DEF" {
		t.Fatalf("Parse = %q %q %v", alg, id, ok)
	}
	if _, _, ok := types.KeyID("bare").Parse(); ok {
		t.Fatal("bare key id parsed as qualified")
	}
	if got := types.NewKeyID(types.AlgorithmCurve25519, "DEV"); got != "curve25519:DEV" {
		t.Fatalf("NewKeyID = %q", got)
	}
}

func TestDeviceKeys_KeepsDecodedBytes(t *testing.T) {
	in := []byte(`{"user_id":"@u:h","device_id":"D","algorithms":[],"keys":{"ed25519:D":"k"},"x_extra":{"n":1}}`)

	var d types.DeviceKeys
	if err := json.Unmarshal(in, &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != string(in) {
		t.Fatalf("re-encoded bytes differ:\n%s\n%s", out, in)
	}
	if k, ok := d.Ed25519(); !ok || k != "k" {
		t.Fatalf("Ed25519() = %q, %v", k, ok)
	}
	if _, ok := d.Curve25519(); ok {
		t.Fatal("unexpected curve25519 key")
	}
}

func TestCrossSigningKey_Key(t *testing.T) {
	k := types.CrossSigningKey{
		Usage: []types.KeyUsage{types.UsageMaster},
		Keys:  map[types.KeyID]string{"ed25519:P": "P"},
	}
	if !k.HasUsage(types.UsageMaster) || k.HasUsage(types.UsageSelfSigning) {
		t.Fatal("HasUsage wrong")
	}
	if id, pub, ok := k.Key(); !ok || id != "ed25519:P" || pub != "P" {
		t.Fatalf("Key() = %q %q %v", id, pub, ok)
	}
	k.Keys["ed25519:Q"] = "Q"
	if _, _, ok := k.Key(); ok {
		t.Fatal("two keys accepted")
	}
}

func TestSignatures_WithCopies(t *testing.T) {
	s := types.Signatures{"@u:h": {"ed25519:A": "a"}}
	t2 := s.With("@u:h", "ed25519:B", "b")
	if _, ok := s.Get("@u:h", "ed25519:B"); ok {
		t.Fatal("With modified the receiver")
	}
	if sig, ok := t2.Get("@u:h", "ed25519:A"); !ok || sig != "a" {
		t.Fatal("With dropped an existing entry")
	}
}

func TestDiagnostics_Add(t *testing.T) {
	var d types.Diagnostics
	d.Add(types.Issue{Reason: types.ExcludedDehydrated})
	d.Add(types.Issue{Reason: types.ExcludedUnsigned})
	d.Add(types.Issue{Reason: types.ExcludedUnsigned})
	d.Add(types.Issue{Reason: types.ExcludedMalformed})
	if d.Dehydrated != 1 || d.Unsigned != 2 || d.Malformed != 1 || d.Excluded() != 4 || len(d.Issues) != 4 {
		t.Fatalf("diagnostics = %+v", d)
	}
}
