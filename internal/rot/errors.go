package rot

import "errors"

var (
	ErrNotAMember   = errors.New("rot: caller is not a member")
	ErrSlotTaken    = errors.New("rot: slot already taken")
	ErrNoLongerValid = errors.New("rot: slot is no longer valid")
	ErrNotTheOwner  = errors.New("rot: caller does not own the slot")
	ErrNotEnoughFunds = errors.New("rot: not enough funds")
	ErrSlotNotFound = errors.New("rot: slot not found")
)
