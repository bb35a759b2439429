// internal/store/snapshot_store_test.go
package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"keyshare/internal/domain"
	"keyshare/internal/fixture"
	"keyshare/internal/protocol/crosssign"
	"keyshare/internal/store"
)

func TestSnapshot_SaveLoad_OK(t *testing.T) {
	ctx := context.Background()
	var snaps domain.SnapshotStore = store.NewSnapshotFileStore(t.TempDir())

	resp, _, err := fixture.BobDehydrated()
	if err != nil {
		t.Fatalf("BobDehydrated: %v", err)
	}
	if err := snaps.SaveSnapshot(ctx, "bob", resp); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	got, ok, err := snaps.LoadSnapshot(ctx, "bob")
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if !ok {
		t.Fatal("snapshot not found after save")
	}
	dev, ok := got.DeviceKeys[fixture.BobID][fixture.BobDehydratedDeviceID]
	if !ok || !dev.Dehydrated {
		t.Fatalf("dehydrated device lost: %+v", got.DeviceKeys)
	}
	if !crosssign.New(got).IsIdentityAnchored(fixture.BobID) {
		t.Fatalf("cross-signing keys no longer verify after reload")
	}
}

func TestSnapshot_Missing(t *testing.T) {
	snaps := store.NewSnapshotFileStore(t.TempDir())

	_, ok, err := snaps.LoadSnapshot(context.Background(), "nope")
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if ok {
		t.Fatal("expected missing snapshot")
	}
}

func TestSnapshot_InvalidName(t *testing.T) {
	snaps := store.NewSnapshotFileStore(t.TempDir())

	for _, name := range []string{"", "..", "a/b", `a\b`} {
		if err := snaps.SaveSnapshot(context.Background(), name, domain.KeyQueryResponse{}); !errors.Is(err, store.ErrInvalidName) {
			t.Fatalf("SaveSnapshot(%q): want ErrInvalidName, got %v", name, err)
		}
	}
}

func TestSnapshot_ReadWritePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snap.json")

	if _, err := store.ReadSnapshot(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want ErrNotExist, got %v", err)
	}

	resp, _, err := fixture.BobDehydrated()
	if err != nil {
		t.Fatalf("BobDehydrated: %v", err)
	}
	if err := store.WriteSnapshot(path, resp); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	if _, err := store.ReadSnapshot(path); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}
