package tcr

import (
	"math"
	"testing"

	"github.com/NodleCode/PKI/internal/ledger"
)

type recordingSink struct {
	incoming, outgoing, full []AccountID
	calls                    int
}

func (r *recordingSink) ChangeMembersSorted(incoming, outgoing, full []AccountID) {
	r.calls++
	r.incoming = incoming
	r.outgoing = outgoing
	r.full = full
}

func TestFinalize_ChangeMembersCalledOnceWithSortedLists(t *testing.T) {
	l := ledger.NewMemory()
	l.SetFreeBalance("B", 100)
	l.SetFreeBalance("A", 100)
	sink := &recordingSink{}
	cfg := Config{MinimumApplicationAmount: 100, FinalizeApplicationPeriod: 10}
	e := NewEngine(cfg, l, WithChangeMembersSubscriber(sink))

	must(t, e.Apply("B", nil, 100, 0))
	must(t, e.Apply("A", nil, 100, 0))

	e.OnBlockFinalized(10)

	if sink.calls != 1 {
		t.Fatalf("ChangeMembersSorted called %d times, want 1", sink.calls)
	}
	if len(sink.incoming) != 2 || sink.incoming[0] != "A" || sink.incoming[1] != "B" {
		t.Fatalf("incoming = %v, want sorted [A B]", sink.incoming)
	}
	if len(sink.full) != 2 || sink.full[0] != "A" || sink.full[1] != "B" {
		t.Fatalf("full membership = %v, want sorted [A B]", sink.full)
	}
}

func TestFinalize_NoNotificationWhenNothingChanged(t *testing.T) {
	l := ledger.NewMemory()
	sink := &recordingSink{}
	e := NewEngine(Config{}, l, WithChangeMembersSubscriber(sink))

	e.OnBlockFinalized(1000)

	if sink.calls != 0 {
		t.Fatalf("ChangeMembersSorted called %d times, want 0", sink.calls)
	}
}

func TestVote_OverflowSurfacesAsError(t *testing.T) {
	l := ledger.NewMemory()
	l.SetFreeBalance("A", 100)
	l.SetFreeBalance("C", 1000)
	l.SetFreeBalance("V1", math.MaxUint64)
	l.SetFreeBalance("V2", 2)
	e := newTestEngine(l)

	must(t, e.Apply("A", nil, 100, 0))
	must(t, e.Counter("C", "A", 1000, 0))
	must(t, e.Vote("V1", "A", true, math.MaxUint64, 0))

	if err := e.Vote("V2", "A", true, 2, 0); err != ErrVoteOverflow {
		t.Fatalf("got %v, want ErrVoteOverflow", err)
	}
}

func TestVote_ChallengeNotFound(t *testing.T) {
	e := newTestEngine(ledger.NewMemory())
	if err := e.Vote("V", "nobody", true, 1, 0); err != ErrChallengeNotFound {
		t.Fatalf("got %v, want ErrChallengeNotFound", err)
	}
}
