// Package share decides which devices receive a group session key.
//
// The service fetches the recipients' keys from the directory (or takes a
// snapshot the caller already holds), resolves them under a share strategy
// through the trust cache, and reports the outcome to the logger and metrics.
// Devices with malformed keys are logged at WARN and never shown to the user.
//
// The returned device list is the input to the key-wrap step. Callers must run
// at most one key-wrap operation at a time per (user, device) pair.
package share
