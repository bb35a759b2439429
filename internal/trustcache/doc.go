// Package trustcache memoises share-strategy resolutions.
//
// A resolution is a pure function of the key-query snapshot, the strategy,
// the local user and the recipient set, so the cache key is a BLAKE3 digest
// of exactly those: the snapshot fingerprint, the strategy name, the local
// user and the sorted, de-duplicated recipients. A new directory response
// with different keys or signatures gets a new fingerprint and misses.
//
// Only successful resolutions are cached. Policy errors are recomputed so the
// caller always sees the offending devices from the current snapshot.
package trustcache
