// Package config loads the pkid harness's configuration, adapted from the
// teacher's viper-based internal/config package but scoped down to the
// TCR and Root-of-Trust engines' parameters.
package config

import (
	"github.com/NodleCode/PKI/internal/rot"
	"github.com/NodleCode/PKI/internal/tcr"
)

// Config is the top-level, fully-resolved configuration the harness
// builds its engines from.
type Config struct {
	TCR     TCRConfig     `mapstructure:"tcr"`
	RoT     RoTConfig     `mapstructure:"rot"`
	Storage StorageConfig `mapstructure:"storage"`
	Audit   AuditConfig   `mapstructure:"audit"`

	configPath string
}

// TCRConfig mirrors tcr.Config for file/env binding.
type TCRConfig struct {
	MinimumApplicationAmount  uint64 `mapstructure:"minimum_application_amount"`
	MinimumCounterAmount      uint64 `mapstructure:"minimum_counter_amount"`
	MinimumChallengeAmount    uint64 `mapstructure:"minimum_challenge_amount"`
	FinalizeApplicationPeriod uint64 `mapstructure:"finalize_application_period"`
	FinalizeChallengePeriod   uint64 `mapstructure:"finalize_challenge_period"`
	LoosersSlashPerMille      uint64 `mapstructure:"loosers_slash_per_mille"`
}

func (c TCRConfig) ToEngineConfig() tcr.Config {
	return tcr.Config{
		MinimumApplicationAmount:  c.MinimumApplicationAmount,
		MinimumCounterAmount:      c.MinimumCounterAmount,
		MinimumChallengeAmount:    c.MinimumChallengeAmount,
		FinalizeApplicationPeriod: c.FinalizeApplicationPeriod,
		FinalizeChallengePeriod:   c.FinalizeChallengePeriod,
		LoosersSlashPerMille:      c.LoosersSlashPerMille,
	}
}

// RoTConfig mirrors rot.Config for file/env binding.
type RoTConfig struct {
	SlotBookingCost  uint64 `mapstructure:"slot_booking_cost"`
	SlotRenewingCost uint64 `mapstructure:"slot_renewing_cost"`
	SlotValidity     uint64 `mapstructure:"slot_validity"`
	FundsCollector   string `mapstructure:"funds_collector"`

	ValidityCacheSize int `mapstructure:"validity_cache_size"`
}

func (c RoTConfig) ToEngineConfig() rot.Config {
	return rot.Config{
		SlotBookingCost:  c.SlotBookingCost,
		SlotRenewingCost: c.SlotRenewingCost,
		SlotValidity:     c.SlotValidity,
		FundsCollector:   rot.AccountID(c.FundsCollector),
	}
}

// StorageConfig selects the kv engine and snapshot path.
type StorageConfig struct {
	// Engine is "pebble" or "leveldb".
	Engine       string `mapstructure:"engine"`
	Path         string `mapstructure:"path"`
	SnapshotPath string `mapstructure:"snapshot_path"`
}

// AuditConfig selects the relational audit backend.
type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Driver  string `mapstructure:"driver"`
	DSN     string `mapstructure:"dsn"`
}
