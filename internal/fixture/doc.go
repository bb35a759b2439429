// Package fixture generates key-query snapshots with real keys and
// signatures: users with master, self-signing and user-signing keys, their
// devices (signed, unsigned, tampered or dehydrated) and cross-user
// verification. Tests build their inputs with it and `trustctl fixture` writes
// sample snapshots from it.
package fixture
