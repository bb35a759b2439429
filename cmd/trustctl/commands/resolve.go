package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"keyshare/internal/domain"
	"keyshare/internal/protocol/sharestrategy"
	"keyshare/internal/services/share"
	"keyshare/internal/store"
)

func resolveCmd() *cobra.Command {
	var (
		src      source
		strategy string
		local    string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "resolve USER...",
		Short: "List the devices a group session key may be shared with",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strategy == "" {
				strategy = wire.Config.Strategy
			}
			st, err := domain.ParseShareStrategy(strategy)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			users := userIDs(args)
			me := domain.UserID(local)

			var res domain.Resolution
			switch {
			case src.file != "":
				var snap domain.KeyQueryResponse
				if snap, err = store.ReadSnapshot(src.file); err != nil {
					return err
				}
				res, err = wire.Share.ResolveSnapshot(ctx, st, me, snap, users)
			case src.name != "":
				res, err = wire.Share.ResolveNamed(ctx, st, me, src.name, users)
			default:
				res, err = wire.Share.Recipients(ctx, st, me, users)
				if errors.Is(err, share.ErrNoDirectory) {
					err = errNoSource
				}
			}
			if err != nil {
				return explain(err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printResolution(cmd.OutOrStdout(), st, res)
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&strategy, "strategy", "", "all-devices, error-on-verified-user-problem or only-trusted-devices (default from KEYSHARE_STRATEGY)")
	cmd.Flags().StringVar(&local, "local", "", "your own user id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the resolution as JSON")
	_ = cmd.MarkFlagRequired("local")
	return cmd
}

// explain turns a policy violation into something the user can act on.
func explain(err error) error {
	var v *sharestrategy.VerifiedUserHasUnsignedDeviceError
	if !errors.As(err, &v) {
		return err
	}
	return fmt.Errorf("%w\n%s is verified but these devices are not signed by their self-signing key.\n"+
		"Ask %s to verify the devices or log them out, or resend with --strategy %s to skip them",
		err, v.User, v.User, domain.OnlyTrustedDevices)
}

func printResolution(w io.Writer, st domain.ShareStrategy, res domain.Resolution) error {
	fmt.Fprintf(w, "strategy: %s\n", st)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, d := range res.Devices {
		fmt.Fprintf(tw, "%s\t%s\n", d.UserID, d.DeviceID)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	diag := res.Diagnostics
	_, err := fmt.Fprintf(w, "%d devices, excluded: dehydrated=%d missing_signature=%d malformed_keys=%d\n",
		len(res.Devices), diag.Dehydrated, diag.Unsigned, diag.Malformed)
	return err
}
