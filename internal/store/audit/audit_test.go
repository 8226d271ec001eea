package audit

import (
	"context"
	"testing"
)

func TestManager_RecordAndClose(t *testing.T) {
	ctx := context.Background()
	m := NewManager(Config{Driver: "sqlite", DSN: ":memory:"})

	if err := m.Open(ctx); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer m.Close()

	if err := m.Record(ctx, "ApplicationPassed", "A", "deposit=100"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	var count int
	if err := m.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_events").Scan(&count); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 1 {
		t.Fatalf("got %d rows, want 1", count)
	}
}

func TestManager_RecordBeforeOpenFails(t *testing.T) {
	m := NewManager(Config{Driver: "sqlite", DSN: ":memory:"})
	if err := m.Record(context.Background(), "x", "y", "z"); err == nil {
		t.Fatal("expected error recording before Open")
	}
}
