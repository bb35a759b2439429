package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"keyshare/internal/domain"
	"keyshare/internal/store"
)

var errNoSource = errors.New("no key source: use --snapshot FILE, --from NAME or --directory URL")

// source selects where a command gets its key-query snapshot from.
type source struct {
	file string
	name string
}

func (s *source) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.file, "snapshot", "", "read keys from this snapshot file")
	cmd.Flags().StringVar(&s.name, "from", "", "read keys from this stored snapshot")
	cmd.MarkFlagsMutuallyExclusive("snapshot", "from")
}

// load returns the snapshot from a file or the store, or queries the
// directory for users when neither was given.
func (s *source) load(ctx context.Context, users []domain.UserID) (domain.KeyQueryResponse, error) {
	switch {
	case s.file != "":
		return store.ReadSnapshot(s.file)
	case s.name != "":
		snap, ok, err := wire.Snapshots.LoadSnapshot(ctx, s.name)
		if err != nil {
			return domain.KeyQueryResponse{}, err
		}
		if !ok {
			return domain.KeyQueryResponse{}, fmt.Errorf("no stored snapshot named %q", s.name)
		}
		return snap, nil
	case wire.Directory != nil:
		return wire.Directory.QueryKeys(ctx, users)
	default:
		return domain.KeyQueryResponse{}, errNoSource
	}
}

func userIDs(args []string) []domain.UserID {
	out := make([]domain.UserID, len(args))
	for i, a := range args {
		out[i] = domain.UserID(a)
	}
	return out
}
