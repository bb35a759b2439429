package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func pullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull NAME USER...",
		Short: "Query the directory and store the response as a named snapshot",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if wire.Directory == nil {
				return fmt.Errorf("no directory configured. use --directory")
			}
			name := args[0]
			snap, err := wire.Share.Pull(cmd.Context(), name, userIDs(args[1:]))
			if err != nil {
				return err
			}
			devices := 0
			for _, d := range snap.DeviceKeys {
				devices += len(d)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s: %d users, %d devices\n", name, len(snap.DeviceKeys), devices)
			return nil
		},
	}
}
