package rot

import (
	"testing"

	"github.com/NodleCode/PKI/internal/ledger"
	"github.com/NodleCode/PKI/internal/rot/cache"
)

func newTestEngine(l *ledger.Memory) *Engine {
	cfg := Config{
		SlotBookingCost:  1000,
		SlotRenewingCost: 500,
		SlotValidity:     100000,
		FundsCollector:   "collector",
	}
	c, err := cache.New[CertificateID](cache.Config{MaxEntries: 64})
	if err != nil {
		panic(err)
	}
	return NewEngine(cfg, l, WithValidityCache(c))
}

func TestBookSlot_NotAMember(t *testing.T) {
	e := newTestEngine(ledger.NewMemory())
	if err := e.BookSlot("A", "K", 0); err != ErrNotAMember {
		t.Fatalf("got %v, want ErrNotAMember", err)
	}
}

// TestBookSlot_S5_SlotLifecycle mirrors spec.md scenario S5.
func TestBookSlot_S5_SlotLifecycle(t *testing.T) {
	l := ledger.NewMemory()
	l.SetFreeBalance("A", 1000)
	l.SetFreeBalance("collector", 0)
	e := newTestEngine(l)
	e.ChangeMembersSorted(nil, nil, []AccountID{"A"})

	if err := e.BookSlot("A", "K", 0); err != nil {
		t.Fatalf("BookSlot: %v", err)
	}
	collected, _ := l.FreeBalance("collector")
	if collected != 1000 {
		t.Fatalf("funds collector balance=%d, want 1000", collected)
	}

	if !e.IsRootCertificateValid("K", 0) {
		t.Fatal("K should be valid right after booking")
	}

	if e.IsRootCertificateValid("K", 100000) {
		t.Fatal("K should already be expired exactly at the boundary (renewed+validity > now is strict)")
	}

	if e.IsRootCertificateValid("K", 100001) {
		t.Fatal("K should be expired past renewed+validity")
	}

	if err := e.RenewSlot("A", "K", 100001); err != ErrNoLongerValid {
		t.Fatalf("got %v, want ErrNoLongerValid", err)
	}
}

// TestBookSlot_Idempotent mirrors spec.md invariant 6: a second book_slot
// with the same certificate_id fails with SlotTaken regardless of caller.
func TestBookSlot_Idempotent(t *testing.T) {
	l := ledger.NewMemory()
	l.SetFreeBalance("A", 10000)
	l.SetFreeBalance("B", 10000)
	e := newTestEngine(l)
	e.ChangeMembersSorted(nil, nil, []AccountID{"A", "B"})

	must(t, e.BookSlot("A", "K", 0))
	if err := e.BookSlot("B", "K", 1); err != ErrSlotTaken {
		t.Fatalf("got %v, want ErrSlotTaken", err)
	}
}

// TestChildCertificateValidity mirrors spec.md scenario S6.
func TestChildCertificateValidity(t *testing.T) {
	l := ledger.NewMemory()
	l.SetFreeBalance("A", 10000)
	e := newTestEngine(l)
	e.ChangeMembersSorted(nil, nil, []AccountID{"A"})
	must(t, e.BookSlot("A", "K", 0))

	e.mu.Lock()
	slot := e.slots["K"]
	slot.ChildRevocations = []CertificateID{"X"}
	e.slots["K"] = slot
	e.mu.Unlock()

	if e.IsChildCertificateValid("K", "X", 0) {
		t.Fatal("X should be revoked")
	}
	if !e.IsChildCertificateValid("K", "Y", 0) {
		t.Fatal("Y should be valid")
	}
	if e.IsChildCertificateValid("K", "K", 0) {
		t.Fatal("a certificate is never its own valid child")
	}
}

// TestValidity_MonotoneFalseOnMembershipLoss mirrors spec.md invariant 5.
func TestValidity_MonotoneFalseOnMembershipLoss(t *testing.T) {
	l := ledger.NewMemory()
	l.SetFreeBalance("A", 10000)
	e := newTestEngine(l)
	e.ChangeMembersSorted(nil, nil, []AccountID{"A"})
	must(t, e.BookSlot("A", "K", 0))

	if !e.IsRootCertificateValid("K", 0) {
		t.Fatal("expected valid while A is a member")
	}

	e.ChangeMembersSorted([]AccountID{"A"}, []AccountID{"A"}, nil)

	if e.IsRootCertificateValid("K", 0) {
		t.Fatal("expected invalid once owner loses membership")
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
