package interfaces

import (
	"context"

	domaintypes "keyshare/internal/domain/types"
)

// ShareService decides which devices receive a group session key.
type ShareService interface {
	// Recipients queries the directory for recipients and resolves them.
	Recipients(
		ctx context.Context,
		strategy domaintypes.ShareStrategy,
		local domaintypes.UserID,
		recipients []domaintypes.UserID,
	) (domaintypes.Resolution, error)
	// ResolveSnapshot resolves against a snapshot the caller already holds.
	ResolveSnapshot(
		ctx context.Context,
		strategy domaintypes.ShareStrategy,
		local domaintypes.UserID,
		snapshot domaintypes.KeyQueryResponse,
		recipients []domaintypes.UserID,
	) (domaintypes.Resolution, error)
}
