package config

import "testing"

func TestLoadConfig_DefaultsOnly(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TCR.MinimumApplicationAmount != 100 {
		t.Fatalf("got %d, want 100", cfg.TCR.MinimumApplicationAmount)
	}
	if cfg.Storage.Engine != "pebble" {
		t.Fatalf("got %q, want pebble", cfg.Storage.Engine)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig("/no/such/file.toml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate_RejectsInvertedMinimums(t *testing.T) {
	cfg := &Config{TCR: TCRConfig{
		MinimumApplicationAmount: 1000,
		MinimumCounterAmount:     100,
		MinimumChallengeAmount:   10000,
	}, Storage: StorageConfig{Engine: "pebble"}}

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for counter amount below application amount")
	}
}

func TestValidate_RejectsBadSlashFraction(t *testing.T) {
	cfg := &Config{TCR: TCRConfig{LoosersSlashPerMille: 1500}, Storage: StorageConfig{Engine: "pebble"}}
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for slash fraction above 1000")
	}
}

func TestValidate_RejectsAuditEnabledWithoutDSN(t *testing.T) {
	cfg := &Config{Audit: AuditConfig{Enabled: true}, Storage: StorageConfig{Engine: "leveldb"}}
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for audit enabled without DSN")
	}
}
