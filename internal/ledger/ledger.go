// Package ledger defines the balance-holding collaborator that the TCR and
// Root-of-Trust engines stake, slash and pay out against.
package ledger

import (
	"errors"
	"fmt"
)

// AccountID identifies a ledger account. Account identifiers are opaque
// byte sequences; no cryptographic meaning is derived from them here.
type AccountID string

var (
	// ErrInsufficientFreeBalance is returned when a reserve would take an
	// account's free balance below zero.
	ErrInsufficientFreeBalance = errors.New("ledger: insufficient free balance")
	// ErrInsufficientReserved is returned when an unreserve call asks for
	// more than is currently reserved.
	ErrInsufficientReserved = errors.New("ledger: insufficient reserved balance")
	// ErrUnknownAccount is returned by DepositIntoExisting for an account
	// that has never held a balance.
	ErrUnknownAccount = errors.New("ledger: unknown account")
)

// Ledger is the narrow balance surface the TCR and Root-of-Trust engines
// depend on. Implementations are expected to be safe for concurrent use by
// readers, and to serialize mutating calls the same way the engines
// serialize their own operations within a block.
type Ledger interface {
	// FreeBalance returns the spendable balance of an account, excluding
	// anything currently reserved.
	FreeBalance(account AccountID) (uint64, error)

	// ReservedBalance returns the amount currently reserved (staked) by an
	// account.
	ReservedBalance(account AccountID) (uint64, error)

	// Reserve moves amount from free balance into the reserved balance.
	// It fails with ErrInsufficientFreeBalance if the account cannot cover
	// the reservation.
	Reserve(account AccountID, amount uint64) error

	// Unreserve moves amount from reserved balance back into free balance.
	// It fails with ErrInsufficientReserved if less than amount is
	// reserved; callers should treat this as a programmer error, since the
	// engines only ever unreserve amounts they themselves reserved.
	Unreserve(account AccountID, amount uint64) error

	// Slash permanently burns up to amount from an account's free balance,
	// returning the amount actually burned. Finalization always unreserves
	// a loser's deposit before slashing a fraction of it, so Slash acts on
	// free balance, not reserved balance; it burns less than amount rather
	// than erroring if the account cannot cover it.
	Slash(account AccountID, amount uint64) (uint64, error)

	// DepositIntoExisting adds amount to account's free balance. Unlike a
	// normal transfer this never creates a new account: if the account has
	// never held a balance it returns ErrUnknownAccount, mirroring the
	// source system's "cannot resurrect a pruned account" behavior that
	// finalization must absorb rather than propagate.
	DepositIntoExisting(account AccountID, amount uint64) error
}

// InsufficientBalanceError wraps one of the sentinel errors above with the
// account and amount involved, for logging at call sites.
type InsufficientBalanceError struct {
	Account AccountID
	Amount  uint64
	Err     error
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("ledger: account %s: %s (amount %d)", e.Account, e.Err, e.Amount)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return e.Err
}
