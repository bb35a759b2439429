package interfaces

import (
	"context"

	domaintypes "keyshare/internal/domain/types"
)

// KeyQuerier fetches device and cross-signing keys from a directory service.
type KeyQuerier interface {
	QueryKeys(ctx context.Context, users []domaintypes.UserID) (domaintypes.KeyQueryResponse, error)
}
