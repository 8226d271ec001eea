package ledger

import "testing"

func TestMemory_ReserveUnreserve(t *testing.T) {
	l := NewMemory()
	l.SetFreeBalance("alice", 1000)

	if err := l.Reserve("alice", 400); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	free, _ := l.FreeBalance("alice")
	reserved, _ := l.ReservedBalance("alice")
	if free != 600 || reserved != 400 {
		t.Fatalf("got free=%d reserved=%d, want free=600 reserved=400", free, reserved)
	}

	if err := l.Unreserve("alice", 400); err != nil {
		t.Fatalf("Unreserve: %v", err)
	}
	free, _ = l.FreeBalance("alice")
	reserved, _ = l.ReservedBalance("alice")
	if free != 1000 || reserved != 0 {
		t.Fatalf("got free=%d reserved=%d, want free=1000 reserved=0", free, reserved)
	}
}

func TestMemory_ReserveInsufficientFunds(t *testing.T) {
	l := NewMemory()
	l.SetFreeBalance("bob", 100)

	err := l.Reserve("bob", 200)
	if err == nil {
		t.Fatal("expected error reserving more than free balance")
	}
}

func TestMemory_UnreserveMoreThanReserved(t *testing.T) {
	l := NewMemory()
	l.SetFreeBalance("carol", 100)
	_ = l.Reserve("carol", 50)

	if err := l.Unreserve("carol", 100); err == nil {
		t.Fatal("expected error unreserving more than is reserved")
	}
}

func TestMemory_SlashActsOnFreeBalance(t *testing.T) {
	l := NewMemory()
	l.SetFreeBalance("dave", 1000)
	_ = l.Reserve("dave", 1000)
	_ = l.Unreserve("dave", 1000)

	slashed, err := l.Slash("dave", 500)
	if err != nil {
		t.Fatalf("Slash: %v", err)
	}
	if slashed != 500 {
		t.Fatalf("got slashed=%d, want 500", slashed)
	}
	free, _ := l.FreeBalance("dave")
	if free != 500 {
		t.Fatalf("got free=%d, want 500", free)
	}
}

func TestMemory_SlashCapsAtFreeBalance(t *testing.T) {
	l := NewMemory()
	l.SetFreeBalance("erin", 100)

	slashed, err := l.Slash("erin", 10000)
	if err != nil {
		t.Fatalf("Slash: %v", err)
	}
	if slashed != 100 {
		t.Fatalf("got slashed=%d, want 100 (capped)", slashed)
	}
	free, _ := l.FreeBalance("erin")
	if free != 0 {
		t.Fatalf("got free=%d, want 0", free)
	}
}

func TestMemory_DepositIntoExistingUnknownAccount(t *testing.T) {
	l := NewMemory()
	err := l.DepositIntoExisting("ghost", 10)
	if err == nil {
		t.Fatal("expected ErrUnknownAccount for a never-seen account")
	}
}

func TestMemory_DepositIntoExisting(t *testing.T) {
	l := NewMemory()
	l.SetFreeBalance("frank", 100)
	if err := l.DepositIntoExisting("frank", 50); err != nil {
		t.Fatalf("DepositIntoExisting: %v", err)
	}
	free, _ := l.FreeBalance("frank")
	if free != 150 {
		t.Fatalf("got free=%d, want 150", free)
	}
}
