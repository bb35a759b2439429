package commands

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"keyshare/internal/directory"
	"keyshare/internal/domain"
	"keyshare/internal/fixture"
)

const (
	alice = string(fixture.AliceID)
	bob   = string(fixture.BobID)
	carol = string(fixture.CarolID)
)

// run executes trustctl with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("KEYSHARE_DIRECTORY_URL", "")
	t.Setenv("KEYSHARE_DATABASE_URL", "")
	t.Setenv("KEYSHARE_STRATEGY", "")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(args)
	err := execute(root)
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("trustctl %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func trioFile(t *testing.T, home string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trio.json")
	mustRun(t, "--home", home, "fixture", "--scenario", "trio", "--out", path)
	return path
}

func TestResolve_FromFile(t *testing.T) {
	home := t.TempDir()
	path := trioFile(t, home)

	out := mustRun(t, "--home", home, "resolve", "--snapshot", path, "--local", alice,
		"--strategy", "only-trusted-devices", carol, bob, alice)
	for _, want := range []string{"A1", "B1", "C1", "excluded: dehydrated=1 missing_signature=1 malformed_keys=0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	for _, not := range []string{"B2", "C2"} {
		if strings.Contains(out, not) {
			t.Fatalf("output lists excluded device %s:\n%s", not, out)
		}
	}
	if strings.Index(out, "A1") > strings.Index(out, "B1") || strings.Index(out, "B1") > strings.Index(out, "C1") {
		t.Fatalf("devices not ordered by user:\n%s", out)
	}
}

func TestResolve_DefaultStrategyFromConfig(t *testing.T) {
	home := t.TempDir()
	path := trioFile(t, home)

	out := mustRun(t, "--home", home, "resolve", "--snapshot", path, "--local", alice, bob)
	if !strings.Contains(out, "strategy: only-trusted-devices") {
		t.Fatalf("unexpected default strategy:\n%s", out)
	}
}

func TestResolve_JSON(t *testing.T) {
	home := t.TempDir()
	path := trioFile(t, home)

	out := mustRun(t, "--home", home, "resolve", "--snapshot", path, "--local", alice,
		"--strategy", "all-devices", "--json", bob)
	var res domain.Resolution
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if len(res.Devices) != 2 || res.Devices[0].DeviceID != "B1" || res.Devices[1].DeviceID != "B2" {
		t.Fatalf("devices = %v", res.Devices)
	}
}

func TestResolve_PolicyViolationIsActionable(t *testing.T) {
	home := t.TempDir()
	path := trioFile(t, home)

	_, err := run(t, "--home", home, "resolve", "--snapshot", path, "--local", alice,
		"--strategy", "error-on-verified-user-problem", bob)
	if err == nil {
		t.Fatal("expected policy violation")
	}
	msg := err.Error()
	for _, want := range []string{bob, "B2", "--strategy only-trusted-devices"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error missing %q: %s", want, msg)
		}
	}
}

func TestResolve_NoSource(t *testing.T) {
	_, err := run(t, "--home", t.TempDir(), "resolve", "--local", alice, bob)
	if err == nil || !strings.Contains(err.Error(), "no key source") {
		t.Fatalf("want no key source error, got %v", err)
	}
}

func TestResolve_UnknownStrategy(t *testing.T) {
	home := t.TempDir()
	path := trioFile(t, home)
	if _, err := run(t, "--home", home, "resolve", "--snapshot", path, "--local", alice, "--strategy", "some", bob); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestPullAndResolveFromDirectory(t *testing.T) {
	resp, err := fixture.Trio()
	if err != nil {
		t.Fatalf("Trio: %v", err)
	}
	srv := httptest.NewServer(directory.NewServer(resp, nil))
	defer srv.Close()
	home := t.TempDir()

	out := mustRun(t, "--home", home, "--directory", srv.URL, "pull", "trio", alice, bob, carol)
	if !strings.Contains(out, "Saved trio: 3 users, 5 devices") {
		t.Fatalf("unexpected pull output: %s", out)
	}

	live := mustRun(t, "--home", home, "--directory", srv.URL, "resolve", "--local", alice,
		"--strategy", "only-trusted-devices", bob)
	stored := mustRun(t, "--home", home, "resolve", "--from", "trio", "--local", alice,
		"--strategy", "only-trusted-devices", bob)
	if live != stored {
		t.Fatalf("live and stored resolutions differ:\n%s\n%s", live, stored)
	}
	if !strings.Contains(live, "B1") || strings.Contains(live, "B2") {
		t.Fatalf("unexpected resolution:\n%s", live)
	}
}

func TestInspect(t *testing.T) {
	home := t.TempDir()
	path := trioFile(t, home)

	out := mustRun(t, "--home", home, "inspect", "--snapshot", path, "--local", alice)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 6 { // header + 5 devices
		t.Fatalf("want 6 lines, got %d:\n%s", len(lines), out)
	}
	for _, l := range lines {
		f := strings.Fields(l)
		if len(f) < 2 {
			continue
		}
		switch f[1] {
		case "B2":
			// user, device, verified, anchored, self-signed, cross-signed
			if f[2] != "yes" || f[4] != "yes" || f[5] != "no" {
				t.Fatalf("B2 row wrong: %s", l)
			}
		case "C2":
			if f[6] != "yes" {
				t.Fatalf("C2 should be dehydrated: %s", l)
			}
		}
	}
}

func TestFingerprint_FileAndStoreAgree(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(t.TempDir(), "bob.json")
	mustRun(t, "--home", home, "fixture", "--out", path)

	fromFile := mustRun(t, "--home", home, "fingerprint", "--snapshot", path)
	if !strings.HasPrefix(fromFile, "Fingerprint: ") || len(strings.TrimSpace(fromFile)) != len("Fingerprint: ")+64 {
		t.Fatalf("unexpected fingerprint output: %q", fromFile)
	}
	if again := mustRun(t, "--home", home, "fingerprint", "--snapshot", path); again != fromFile {
		t.Fatalf("fingerprint not stable: %q vs %q", fromFile, again)
	}
}

func TestFixture_BobScenarioSharesNothing(t *testing.T) {
	home := t.TempDir()
	mustRun(t, "--home", home, "fixture", "--name", "bob")

	for _, st := range []string{"all-devices", "only-trusted-devices", "error-on-verified-user-problem"} {
		out := mustRun(t, "--home", home, "resolve", "--from", "bob", "--local", bob, "--strategy", st, bob)
		if !strings.Contains(out, "0 devices, excluded: dehydrated=1") {
			t.Fatalf("%s: dehydrated device shared:\n%s", st, out)
		}
	}
}

func TestResolve_MetricsFile(t *testing.T) {
	home := t.TempDir()
	path := trioFile(t, home)
	prom := filepath.Join(t.TempDir(), "trustctl.prom")

	mustRun(t, "--home", home, "--metrics", prom, "resolve", "--snapshot", path, "--local", alice,
		"--strategy", "only-trusted-devices", bob, carol)
	body, err := os.ReadFile(prom)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	for _, want := range []string{
		`keyshare_resolutions_total{outcome="ok",strategy="only-trusted-devices"} 1`,
		`keyshare_excluded_devices_total{reason="dehydrated"} 1`,
		`keyshare_excluded_devices_total{reason="missing_signature"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics missing %q:\n%s", want, body)
		}
	}
}

func TestResolve_MetricsFileAfterPolicyViolation(t *testing.T) {
	home := t.TempDir()
	path := trioFile(t, home)
	prom := filepath.Join(t.TempDir(), "trustctl.prom")

	if _, err := run(t, "--home", home, "--metrics", prom, "resolve", "--snapshot", path, "--local", alice,
		"--strategy", "error-on-verified-user-problem", bob); err == nil {
		t.Fatal("expected policy violation")
	}
	body, err := os.ReadFile(prom)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	want := `keyshare_policy_violations_total{strategy="error-on-verified-user-problem"} 1`
	if !strings.Contains(string(body), want) {
		t.Fatalf("metrics missing %q:\n%s", want, body)
	}
}

func TestFingerprint_ListsStoredSnapshots(t *testing.T) {
	home := t.TempDir()
	db := filepath.Join(t.TempDir(), "keyshare.db")
	path := filepath.Join(t.TempDir(), "trio.json")
	mustRun(t, "--home", home, "--database", db, "fixture", "--scenario", "trio", "--out", path, "--name", "monday")
	mustRun(t, "--home", home, "--database", db, "fixture", "--scenario", "bob", "--name", "bob")

	out := mustRun(t, "--home", home, "--database", db, "fingerprint", "--snapshot", path)
	if !strings.Contains(out, "Stored as: monday\n") {
		t.Fatalf("stored snapshot not listed:\n%s", out)
	}

	out = mustRun(t, "--home", home, "fingerprint", "--snapshot", path)
	if strings.Contains(out, "Stored as") {
		t.Fatalf("file store should not list snapshots:\n%s", out)
	}
}
