package commands

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"keyshare/internal/crypto"
	"keyshare/internal/domain"
	"keyshare/internal/protocol/crosssign"
	"keyshare/internal/protocol/signing"
)

func inspectCmd() *cobra.Command {
	var (
		src   source
		local string
	)
	cmd := &cobra.Command{
		Use:   "inspect [USER...]",
		Short: "Show the cross-signing trust state of users and their devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			users := userIDs(args)
			snap, err := src.load(cmd.Context(), users)
			if err != nil {
				return err
			}
			if len(users) == 0 {
				for u := range snap.DeviceKeys {
					users = append(users, u)
				}
			}
			slices.Sort(users)
			return printTrust(cmd.OutOrStdout(), domain.UserID(local), snap, slices.Compact(users))
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&local, "local", "", "your own user id")
	_ = cmd.MarkFlagRequired("local")
	return cmd
}

func printTrust(w io.Writer, local domain.UserID, snap domain.KeyQueryResponse, users []domain.UserID) error {
	g := crosssign.New(snap)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tDEVICE\tVERIFIED\tANCHORED\tSELF-SIGNED\tCROSS-SIGNED\tDEHYDRATED\tFINGERPRINT")
	for _, u := range users {
		verified := yesNo(g.IsUserVerified(local, u))
		anchored := yesNo(g.IsIdentityAnchored(u))
		devices := snap.DeviceKeys[u]
		if len(devices) == 0 {
			fmt.Fprintf(tw, "%s\t-\t%s\t%s\t-\t-\t-\t-\n", u, verified, anchored)
			continue
		}
		ids := make([]domain.DeviceID, 0, len(devices))
		for id := range devices {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			dev := devices[id]
			fp := "-"
			if k, ok := dev.Curve25519(); ok {
				if pub, err := crypto.ParseCurve25519Public(k); err == nil {
					fp = crypto.Fingerprint(pub.Slice()).String()
				}
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				u, id, verified, anchored,
				yesNo(signing.VerifyDeviceSelfSignature(dev) == nil),
				yesNo(g.IsDeviceCrossSigned(u, dev)),
				yesNo(dev.Dehydrated),
				fp,
			)
		}
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
