package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keyshare/internal/domain"
	"keyshare/internal/fixture"
	"keyshare/internal/store"
)

func fixtureCmd() *cobra.Command {
	var (
		scenario string
		out      string
		name     string
	)
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Generate a test snapshot with fresh keys",
		Long: `Generate a test snapshot with fresh keys.

Scenarios:
  bob   @bob:localhost with full cross-signing keys and one dehydrated device
  trio  @alice, @bob and @carol; alice has verified bob, bob has one unsigned
        device and carol has one dehydrated device`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" && name == "" {
				return fmt.Errorf("--out or --name required")
			}
			var (
				snap domain.KeyQueryResponse
				err  error
			)
			switch scenario {
			case "bob":
				var bob *fixture.User
				snap, bob, err = fixture.BobDehydrated()
				if bob != nil {
					bob.Wipe()
				}
			case "trio":
				snap, err = fixture.Trio()
			default:
				return fmt.Errorf("unknown scenario %q", scenario)
			}
			if err != nil {
				return err
			}

			if out != "" {
				if err := store.WriteSnapshot(out, snap); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			}
			if name != "" {
				if err := wire.Snapshots.SaveSnapshot(cmd.Context(), name, snap); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&scenario, "scenario", "bob", "bob or trio")
	cmd.Flags().StringVar(&out, "out", "", "write the snapshot to this file")
	cmd.Flags().StringVar(&name, "name", "", "save the snapshot in the store under this name")
	return cmd
}
