// Package store provides file-based persistence for key-query snapshots.
//
// A snapshot is one directory response (device keys plus cross-signing keys)
// saved as JSON. Decoded key records keep their original bytes, so a snapshot
// that is loaded and saved again still verifies byte for byte.
//
// SnapshotFileStore keeps named snapshots under <home>/snapshots. ReadSnapshot
// and WriteSnapshot work on arbitrary paths for the command-line tools. All
// writes go through a temp file and rename.
package store
