package domain

import (
	interfaces "keyshare/internal/domain/interfaces"
	types "keyshare/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	UserID            = types.UserID
	DeviceID          = types.DeviceID
	Algorithm         = types.Algorithm
	KeyID             = types.KeyID
	Fingerprint       = types.Fingerprint
	Curve25519Public  = types.Curve25519Public
	Curve25519Private = types.Curve25519Private
	Ed25519Public     = types.Ed25519Public
	Ed25519Private    = types.Ed25519Private
	Signatures        = types.Signatures
	DeviceKeys        = types.DeviceKeys
	KeyUsage          = types.KeyUsage
	CrossSigningKey   = types.CrossSigningKey
	KeyQueryResponse  = types.KeyQueryResponse
	ShareStrategy     = types.ShareStrategy
	DeviceRef         = types.DeviceRef
	ExclusionReason   = types.ExclusionReason
	Issue             = types.Issue
	Diagnostics       = types.Diagnostics
	Resolution        = types.Resolution
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyQuerier    = interfaces.KeyQuerier
	SnapshotStore = interfaces.SnapshotStore
	ShareService  = interfaces.ShareService
)

// Re-exported constants.
const (
	AlgorithmEd25519    = types.AlgorithmEd25519
	AlgorithmCurve25519 = types.AlgorithmCurve25519
	AlgorithmOlmV1      = types.AlgorithmOlmV1
	AlgorithmMegolmV1   = types.AlgorithmMegolmV1

	UsageMaster      = types.UsageMaster
	UsageSelfSigning = types.UsageSelfSigning
	UsageUserSigning = types.UsageUserSigning

	AllDevices                 = types.AllDevices
	ErrorOnVerifiedUserProblem = types.ErrorOnVerifiedUserProblem
	OnlyTrustedDevices         = types.OnlyTrustedDevices

	ExcludedDehydrated = types.ExcludedDehydrated
	ExcludedUnsigned   = types.ExcludedUnsigned
	ExcludedMalformed  = types.ExcludedMalformed
)

// NewKeyID joins an algorithm and identifier into a KeyID.
func NewKeyID(alg Algorithm, id string) KeyID { return types.NewKeyID(alg, id) }

// ParseShareStrategy parses the flag/config spelling of a strategy.
func ParseShareStrategy(v string) (ShareStrategy, error) { return types.ParseShareStrategy(v) }
