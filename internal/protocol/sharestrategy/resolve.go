package sharestrategy

import (
	"fmt"
	"slices"

	"keyshare/internal/domain"
	"keyshare/internal/protocol/crosssign"
	"keyshare/internal/protocol/devicefilter"
)

// Resolve computes the devices that should receive a group session key
// shared by local with recipients under strategy. Recipients missing from
// resp contribute nothing. Duplicate recipients are ignored.
func Resolve(
	strategy domain.ShareStrategy,
	local domain.UserID,
	resp domain.KeyQueryResponse,
	recipients []domain.UserID,
) (domain.Resolution, error) {
	switch strategy {
	case domain.AllDevices, domain.OnlyTrustedDevices, domain.ErrorOnVerifiedUserProblem:
	default:
		return domain.Resolution{}, fmt.Errorf("%w: %v", ErrUnknownStrategy, strategy)
	}

	g := crosssign.New(resp)
	out := domain.Resolution{Devices: []domain.DeviceRef{}}

	for _, user := range sortedUnique(recipients) {
		devices, ok := resp.Devices(user)
		if !ok {
			continue
		}
		p := devicefilter.Partition(user, devices)
		for _, id := range p.Dehydrated {
			out.Diagnostics.Add(domain.Issue{
				Device: domain.DeviceRef{UserID: user, DeviceID: id},
				Reason: domain.ExcludedDehydrated,
			})
		}
		for _, r := range p.Rejected {
			out.Diagnostics.Add(domain.Issue{
				Device: domain.DeviceRef{UserID: user, DeviceID: r.DeviceID},
				Reason: domain.ExcludedMalformed,
				Detail: r.Err.Error(),
			})
		}

		selected, err := apply(strategy, g, local, user, devices, p.Live, &out.Diagnostics)
		if err != nil {
			return domain.Resolution{}, err
		}
		for _, id := range selected {
			out.Devices = append(out.Devices, domain.DeviceRef{UserID: user, DeviceID: id})
		}
	}

	slices.SortFunc(out.Devices, func(a, b domain.DeviceRef) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return out, nil
}

// apply selects from one user's live devices.
func apply(
	strategy domain.ShareStrategy,
	g *crosssign.Graph,
	local, user domain.UserID,
	devices map[domain.DeviceID]domain.DeviceKeys,
	live []domain.DeviceID,
	diag *domain.Diagnostics,
) ([]domain.DeviceID, error) {
	switch strategy {
	case domain.AllDevices:
		return live, nil

	case domain.OnlyTrustedDevices:
		var keep []domain.DeviceID
		for _, id := range live {
			if err := g.DeviceTrust(user, devices[id]); err != nil {
				diag.Add(untrusted(user, id, err))
				continue
			}
			keep = append(keep, id)
		}
		return keep, nil

	case domain.ErrorOnVerifiedUserProblem:
		if !g.IsUserVerified(local, user) {
			return live, nil
		}
		var keep, unsigned []domain.DeviceID
		for _, id := range live {
			if g.IsDeviceCrossSigned(user, devices[id]) {
				keep = append(keep, id)
			} else {
				unsigned = append(unsigned, id)
			}
		}
		if len(unsigned) > 0 {
			return nil, &VerifiedUserHasUnsignedDeviceError{User: user, Devices: unsigned}
		}
		return keep, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, strategy)
}

func untrusted(user domain.UserID, id domain.DeviceID, err error) domain.Issue {
	reason := domain.ExcludedUnsigned
	if crosssign.IsMalformation(err) {
		reason = domain.ExcludedMalformed
	}
	return domain.Issue{
		Device: domain.DeviceRef{UserID: user, DeviceID: id},
		Reason: reason,
		Detail: err.Error(),
	}
}

func sortedUnique(users []domain.UserID) []domain.UserID {
	out := slices.Clone(users)
	slices.Sort(out)
	return slices.Compact(out)
}
