// Package devicefilter separates devices usable for live messaging from
// dehydrated backup devices and from devices whose keys are unusable.
//
// Classification looks only at the device record: the dehydrated flag first,
// then the identity fields and the Curve25519/Ed25519 key pair a device needs
// to take part in an Olm session. No signatures are checked here.
package devicefilter
