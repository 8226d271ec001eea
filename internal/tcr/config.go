package tcr

// Config is the immutable parameter set an Engine is constructed with. All
// fields come from spec.md §6 and never change over the lifetime of a run.
type Config struct {
	MinimumApplicationAmount uint64
	MinimumCounterAmount     uint64
	MinimumChallengeAmount   uint64

	FinalizeApplicationPeriod uint64
	FinalizeChallengePeriod   uint64

	// LoosersSlashPerMille is the per-mille (parts-per-thousand) fraction
	// of a loser's deposit slashed on challenge resolution. 500 = 50%.
	LoosersSlashPerMille uint64
}
