// Package directory provides an HTTP implementation of the domain.KeyQuerier
// interface.
//
// The directory is the server that publishes device keys and cross-signing
// keys. QueryKeys posts a Matrix-style key query
//
//	POST /_matrix/client/v3/keys/query
//	{"device_keys": {"@bob:localhost": []}}
//
// and decodes the response into a domain.KeyQueryResponse, keeping the raw
// bytes of every key record so signatures can be checked against exactly
// what the server sent.
//
// Requests accept a context for cancellation and deadlines. Non-2xx statuses
// are returned as errors with the HTTP method, full URL, and status text.
// Batching and retries are left to the caller.
//
// Server is the other side: an http.Handler answering the same query from an
// in-memory snapshot, used by cmd/directory and in tests.
package directory
