package tcr

import "errors"

// Policy rejection errors: the caller violated a precondition, no state changed.
var (
	ErrDepositTooSmall      = errors.New("tcr: deposit too small")
	ErrApplicationPending   = errors.New("tcr: application already pending")
	ErrApplicationChallenged = errors.New("tcr: application already challenged")
	ErrNotAMember           = errors.New("tcr: origin is not a member")
)

// Lookup miss errors: the targeted record is absent, no state changed.
var (
	ErrApplicationNotFound = errors.New("tcr: application not found")
	ErrChallengeNotFound   = errors.New("tcr: challenge not found")
	ErrMemberNotFound      = errors.New("tcr: member not found")
)

// Resource exhaustion.
var ErrNotEnoughFunds = errors.New("tcr: not enough funds")

// Arithmetic invariant failure: surfaced as a fatal dispatch error for the
// call, never silently clamped.
var ErrVoteOverflow = errors.New("tcr: vote total overflow")
