// Package tcr implements the Token Curated Registry state machine:
// candidates stake deposits to apply for membership, opponents stake to
// challenge them, third parties vote with stakes, and a per-block
// finalization pass deterministically resolves matured records.
package tcr

import (
	"fmt"
	"sync"

	"github.com/NodleCode/PKI/internal/ledger"
)

// Engine owns the Applications, Challenges and Members collections and
// drives their transitions. It is not internally synchronized against
// concurrent mutating calls — the host is expected to serialize apply,
// counter, vote, challenge and OnBlockFinalized the same way a single
// block's transactions are serialized, per spec.md §5. Read-only queries
// (Member, IsMember) take the read lock and are safe to call from other
// goroutines while a mutating call is in flight elsewhere only if the host
// itself provides that guarantee; the mutex here guards the maps against
// concurrent reads racing a mutation, not against concurrent mutations.
type Engine struct {
	cfg    Config
	ledger ledger.Ledger
	sink   EventSink
	log    Logger
	subs   ChangeMembers

	mu           sync.RWMutex
	applications map[AccountID]Application
	challenges   map[AccountID]Application
	members      map[AccountID]Application
}

// Option configures an Engine at construction, mirroring the teacher's
// functional-options relationaldb.Manager constructor.
type Option func(*Engine)

// WithEventSink overrides the default no-op EventSink.
func WithEventSink(sink EventSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithLogger overrides the default no-op Logger.
func WithLogger(l Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithChangeMembersSubscriber wires a ChangeMembers subscriber (typically
// an internal/rot.Engine) to receive membership deltas on finalization.
func WithChangeMembersSubscriber(subs ChangeMembers) Option {
	return func(e *Engine) { e.subs = subs }
}

// NewEngine constructs an empty Engine.
func NewEngine(cfg Config, l ledger.Ledger, opts ...Option) *Engine {
	e := &Engine{
		cfg:          cfg,
		ledger:       l,
		sink:         NoOpEventSink{},
		log:          noOpLogger{},
		subs:         NoOpChangeMembers{},
		applications: make(map[AccountID]Application),
		challenges:   make(map[AccountID]Application),
		members:      make(map[AccountID]Application),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsMember reports whether account currently holds a Members entry.
func (e *Engine) IsMember(account AccountID) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.members[account]
	return ok
}

// Member returns the frozen Application record for a current member.
func (e *Engine) Member(account AccountID) (Application, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	a, ok := e.members[account]
	return a.Clone(), ok
}

// Snapshot returns deep copies of the three logical collections, for
// internal/store/snapshot to serialize.
func (e *Engine) Snapshot() (applications, challenges, members map[AccountID]Application) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneMap(e.applications), cloneMap(e.challenges), cloneMap(e.members)
}

// Restore replaces the three logical collections wholesale, for
// internal/store/snapshot to load a checkpoint at startup. It does not
// itself notify any ChangeMembers subscriber; callers that restore into a
// live Root-of-Trust engine must call ChangeMembersSorted separately.
func (e *Engine) Restore(applications, challenges, members map[AccountID]Application) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applications = cloneMap(applications)
	e.challenges = cloneMap(challenges)
	e.members = cloneMap(members)
}

func cloneMap(m map[AccountID]Application) map[AccountID]Application {
	out := make(map[AccountID]Application, len(m))
	for k, v := range m {
		out[k] = v.Clone()
	}
	return out
}

// Apply implements spec.md §4.1 apply(metadata, deposit).
func (e *Engine) Apply(origin AccountID, metadata []byte, deposit, now uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if deposit < e.cfg.MinimumApplicationAmount {
		return ErrDepositTooSmall
	}
	if _, ok := e.applications[origin]; ok {
		return ErrApplicationPending
	}
	if _, ok := e.challenges[origin]; ok {
		return ErrApplicationChallenged
	}
	if err := e.ledger.Reserve(origin, deposit); err != nil {
		return fmt.Errorf("%w: %v", ErrNotEnoughFunds, err)
	}

	e.applications[origin] = Application{
		Candidate:        origin,
		CandidateDeposit: deposit,
		Metadata:         append([]byte(nil), metadata...),
		CreatedBlock:     now,
	}
	e.sink.Emit(NewApplication{Who: origin, Amount: deposit})
	e.log.Info("application received from %s for %d", origin, deposit)
	return nil
}

// Counter implements spec.md §4.1 counter(target, deposit).
func (e *Engine) Counter(origin, target AccountID, deposit, now uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if deposit < e.cfg.MinimumCounterAmount {
		return ErrDepositTooSmall
	}
	app, ok := e.applications[target]
	if !ok {
		return ErrApplicationNotFound
	}
	if err := e.ledger.Reserve(origin, deposit); err != nil {
		return fmt.Errorf("%w: %v", ErrNotEnoughFunds, err)
	}

	app.Challenger = origin
	app.ChallengerDeposit = deposit
	app.ChallengedBlock = now
	delete(e.applications, target)
	e.challenges[target] = app

	e.sink.Emit(ApplicationCountered{Target: target, Challenger: origin, Amount: deposit})
	return nil
}

// Vote implements spec.md §4.1 vote(target, supporting, deposit).
func (e *Engine) Vote(origin, target AccountID, supporting bool, deposit, _ uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	app, ok := e.challenges[target]
	if !ok {
		return ErrChallengeNotFound
	}

	total := app.VotesAgainst
	if supporting {
		total = app.VotesFor
	}
	newTotal := total + deposit
	if newTotal < total {
		return ErrVoteOverflow
	}
	if err := e.ledger.Reserve(origin, deposit); err != nil {
		return fmt.Errorf("%w: %v", ErrNotEnoughFunds, err)
	}

	stake := Stake{Voter: origin, Amount: deposit}
	if supporting {
		app.VotesFor = newTotal
		app.VotersFor = append(app.VotersFor, stake)
	} else {
		app.VotesAgainst = newTotal
		app.VotersAgainst = append(app.VotersAgainst, stake)
	}
	e.challenges[target] = app

	e.sink.Emit(VoteRecorded{Target: target, Voter: origin, Amount: deposit, Supporting: supporting})
	return nil
}

// Challenge implements spec.md §4.1 challenge(target, deposit): challenging
// an existing Member, as opposed to Counter which challenges a pending
// Application.
func (e *Engine) Challenge(origin, target AccountID, deposit, now uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if deposit < e.cfg.MinimumChallengeAmount {
		return ErrDepositTooSmall
	}
	member, ok := e.members[target]
	if !ok {
		return ErrMemberNotFound
	}
	if err := e.ledger.Reserve(origin, deposit); err != nil {
		return fmt.Errorf("%w: %v", ErrNotEnoughFunds, err)
	}

	app := member.Clone()
	app.Challenger = origin
	app.ChallengerDeposit = deposit
	app.ChallengedBlock = now
	app.VotesFor = 0
	app.VotesAgainst = 0
	app.VotersFor = nil
	app.VotersAgainst = nil
	e.challenges[target] = app
	// The Members entry is retained; removal only happens on rejection at
	// finalization.

	e.sink.Emit(ApplicationChallenged{Target: target, Challenger: origin, Amount: deposit})
	return nil
}
