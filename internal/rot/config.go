package rot

// Config is the immutable parameter set a Root-of-Trust Engine is
// constructed with, per spec.md §6.
type Config struct {
	SlotBookingCost  uint64
	SlotRenewingCost uint64
	SlotValidity     uint64
	// FundsCollector is the account slot fees are deposited into.
	FundsCollector AccountID
}
