package config

import "github.com/spf13/viper"

// setDefaults seeds the parameter values used by spec.md's scenarios
// S1-S6, adapted from the teacher's setDefaults(v *viper.Viper).
func setDefaults(v *viper.Viper) {
	v.SetDefault("tcr.minimum_application_amount", 100)
	v.SetDefault("tcr.minimum_counter_amount", 1000)
	v.SetDefault("tcr.minimum_challenge_amount", 10000)
	v.SetDefault("tcr.finalize_application_period", 100)
	v.SetDefault("tcr.finalize_challenge_period", 101)
	v.SetDefault("tcr.loosers_slash_per_mille", 500)

	v.SetDefault("rot.slot_booking_cost", 1000)
	v.SetDefault("rot.slot_renewing_cost", 500)
	v.SetDefault("rot.slot_validity", 100000)
	v.SetDefault("rot.funds_collector", "")
	v.SetDefault("rot.validity_cache_size", 1024)

	v.SetDefault("storage.engine", "pebble")
	v.SetDefault("storage.path", "./data")
	v.SetDefault("storage.snapshot_path", "./data/snapshot.bin")

	v.SetDefault("audit.enabled", false)
	v.SetDefault("audit.driver", "sqlite")
	v.SetDefault("audit.dsn", "./data/audit.db")
}
