// Package sharestrategy decides which devices receive a group session key.
//
// # Flow
//
// For every recipient user present in the snapshot:
//  1. Split the user's devices into live, dehydrated and malformed
//     (devicefilter). Dehydrated devices never receive a live key, whatever
//     the strategy.
//  2. Apply the strategy to the live devices using the trust graph
//     (crosssign):
//     - AllDevices keeps every live device.
//     - OnlyTrustedDevices keeps cross-signed devices and drops the rest.
//     - ErrorOnVerifiedUserProblem keeps every device of an unverified user;
//     for a verified user it keeps cross-signed devices and aborts the whole
//     resolution if any live device is not cross-signed.
//  3. Return the union ordered by (user, device) with counts of what was
//     excluded and why.
//
// # Errors
//
// The only error that aborts an otherwise valid resolution is
// *VerifiedUserHasUnsignedDeviceError. Malformed devices and keys are
// excluded and reported in the diagnostics.
//
// Resolve keeps no state between calls; concurrent calls over different
// snapshots are independent.
package sharestrategy
