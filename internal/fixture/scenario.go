package fixture

import "keyshare/internal/domain"

const (
	// BobID is the user in the dehydrated-device scenario.
	BobID domain.UserID = "@bob:localhost"
	// BobDehydratedDeviceID is Bob's only device.
	BobDehydratedDeviceID domain.DeviceID = "EHHGPSNMAG"
)

// BobDehydrated builds a snapshot in which Bob has master, self-signing and
// user-signing keys and a single dehydrated device that only carries its own
// self-signature.
func BobDehydrated() (domain.KeyQueryResponse, *User, error) {
	bob, err := NewUser(BobID)
	if err != nil {
		return domain.KeyQueryResponse{}, nil, err
	}
	s := NewSnapshot()
	if err := s.AddUser(bob); err != nil {
		return domain.KeyQueryResponse{}, nil, err
	}
	dev, err := bob.NewDevice(BobDehydratedDeviceID, Dehydrated())
	if err != nil {
		return domain.KeyQueryResponse{}, nil, err
	}
	s.AddDevice(dev)
	return s.Response(), bob, nil
}

const (
	AliceID domain.UserID = "@alice:localhost"
	CarolID domain.UserID = "@carol:localhost"
)

// Trio builds a snapshot with three users, seen from Alice:
//
//	alice: A1 cross-signed
//	bob:   B1 cross-signed, B2 not cross-signed (Alice has verified Bob)
//	carol: C1 cross-signed, C2 dehydrated
func Trio() (domain.KeyQueryResponse, error) {
	s := NewSnapshot()
	users := make(map[domain.UserID]*User, 3)
	for _, id := range []domain.UserID{AliceID, BobID, CarolID} {
		u, err := NewUser(id)
		if err != nil {
			return domain.KeyQueryResponse{}, err
		}
		if err := s.AddUser(u); err != nil {
			return domain.KeyQueryResponse{}, err
		}
		users[id] = u
	}
	if err := s.Verify(users[AliceID], users[BobID]); err != nil {
		return domain.KeyQueryResponse{}, err
	}
	steps := []struct {
		user *User
		id   domain.DeviceID
		opts []DeviceOption
	}{
		{users[AliceID], "A1", nil},
		{users[BobID], "B1", nil},
		{users[BobID], "B2", []DeviceOption{NotCrossSigned()}},
		{users[CarolID], "C1", nil},
		{users[CarolID], "C2", []DeviceOption{Dehydrated()}},
	}
	for _, st := range steps {
		if err := s.AddDevices(st.user, []domain.DeviceID{st.id}, st.opts...); err != nil {
			return domain.KeyQueryResponse{}, err
		}
	}
	for _, u := range users {
		u.Wipe()
	}
	return s.Response(), nil
}
