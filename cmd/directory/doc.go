// Package main runs a development key directory. It loads a key-query
// snapshot from a file and answers Matrix-style key queries from it.
//
// HTTP API
//
//	POST /_matrix/client/v3/keys/query {"device_keys": {"<user>": ["<device>", ...]}}
//	    Return the device keys and cross-signing keys of the requested users.
//	    An empty device list means all of the user's devices. Unknown users
//	    are left out of the response.
//
//	GET /metrics
//	    Prometheus metrics.
//
// Behaviour
//
//   - All state is held in memory; the snapshot file is read once at startup
//     and again on SIGHUP.
//   - Key records are served byte for byte as they appear in the snapshot, so
//     their signatures keep verifying.
//   - Logs are JSON on stdout. Request lines are logged at debug level.
//   - The default listen address is :8008.
//
// The directory is an untrusted party: clients verify every signature
// themselves. This server does no authentication and is meant for local use.
package main
