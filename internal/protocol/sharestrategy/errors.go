package sharestrategy

import (
	"errors"
	"fmt"
	"strings"

	"keyshare/internal/domain"
)

var (
	// ErrVerifiedUserHasUnsignedDevice matches *VerifiedUserHasUnsignedDeviceError.
	ErrVerifiedUserHasUnsignedDevice = errors.New("verified user has a device that is not cross-signed")
	// ErrUnknownStrategy is returned for strategies outside the defined set.
	ErrUnknownStrategy = errors.New("unknown share strategy")
)

// VerifiedUserHasUnsignedDeviceError reports a verified user owning live
// devices their self-signing key does not vouch for. It aborts the whole
// resolution.
type VerifiedUserHasUnsignedDeviceError struct {
	User    domain.UserID
	Devices []domain.DeviceID
}

func (e *VerifiedUserHasUnsignedDeviceError) Error() string {
	ids := make([]string, len(e.Devices))
	for i, d := range e.Devices {
		ids[i] = string(d)
	}
	return fmt.Sprintf("verified user %s has devices that are not cross-signed: %s",
		e.User, strings.Join(ids, ", "))
}

// Is makes errors.Is(err, ErrVerifiedUserHasUnsignedDevice) hold.
func (e *VerifiedUserHasUnsignedDeviceError) Is(target error) bool {
	return target == ErrVerifiedUserHasUnsignedDevice
}
