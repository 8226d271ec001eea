package config

import "fmt"

// Validate checks the cross-field invariants spec.md §6 implies: minimum
// deposit amounts must not decrease in severity (application <= counter <=
// challenge), the slash fraction is at most 1000 per mille, and an audit
// backend requires a non-empty DSN.
func Validate(cfg *Config) error {
	t := cfg.TCR
	if t.MinimumCounterAmount < t.MinimumApplicationAmount {
		return fmt.Errorf("tcr.minimum_counter_amount (%d) must be >= tcr.minimum_application_amount (%d)",
			t.MinimumCounterAmount, t.MinimumApplicationAmount)
	}
	if t.MinimumChallengeAmount < t.MinimumCounterAmount {
		return fmt.Errorf("tcr.minimum_challenge_amount (%d) must be >= tcr.minimum_counter_amount (%d)",
			t.MinimumChallengeAmount, t.MinimumCounterAmount)
	}
	if t.LoosersSlashPerMille > 1000 {
		return fmt.Errorf("tcr.loosers_slash_per_mille (%d) must be <= 1000", t.LoosersSlashPerMille)
	}

	if cfg.Audit.Enabled && cfg.Audit.DSN == "" {
		return fmt.Errorf("audit.dsn must be set when audit.enabled is true")
	}

	switch cfg.Storage.Engine {
	case "pebble", "leveldb":
	default:
		return fmt.Errorf("storage.engine must be 'pebble' or 'leveldb', got %q", cfg.Storage.Engine)
	}
	return nil
}
