package interfaces

import (
	"context"

	domaintypes "keyshare/internal/domain/types"
)

// SnapshotStore persists key-query snapshots by name.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, name string, snapshot domaintypes.KeyQueryResponse) error
	// LoadSnapshot reports found=false, with no error, for an unknown name.
	LoadSnapshot(ctx context.Context, name string) (snapshot domaintypes.KeyQueryResponse, found bool, err error)
}
