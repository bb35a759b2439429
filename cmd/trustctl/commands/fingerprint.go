package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"keyshare/internal/crypto"
	"keyshare/internal/domain"
)

// fingerprintIndex is implemented by stores that index snapshots by content.
type fingerprintIndex interface {
	NamesByFingerprint(ctx context.Context, fp domain.Fingerprint) ([]string, error)
}

func fingerprintCmd() *cobra.Command {
	var src source
	cmd := &cobra.Command{
		Use:   "fingerprint [USER...]",
		Short: "Print the BLAKE3 fingerprint of a snapshot",
		Long: `Print the BLAKE3 fingerprint of a snapshot.

With a database store, also list the stored snapshots with the same content.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := src.load(cmd.Context(), userIDs(args))
			if err != nil {
				return err
			}
			fp, err := crypto.SnapshotFingerprint(snap)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fingerprint: %s\n", fp)

			idx, ok := wire.Snapshots.(fingerprintIndex)
			if !ok {
				return nil
			}
			names, err := idx.NamesByFingerprint(cmd.Context(), fp)
			if err != nil {
				return err
			}
			if len(names) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Stored as: %s\n", strings.Join(names, ", "))
			}
			return nil
		},
	}
	src.register(cmd)
	return cmd
}
