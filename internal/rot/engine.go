package rot

import (
	"fmt"
	"sync"

	"github.com/NodleCode/PKI/internal/ledger"
	"github.com/NodleCode/PKI/internal/rot/cache"
)

// Engine owns the slot table and the Members mirror it maintains via the
// ChangeMembers contract. Like internal/tcr.Engine, it is not internally
// synchronized against concurrent mutating calls; the host serializes
// BookSlot/RenewSlot the way a block's transactions are serialized. The
// validity query predicates take the read lock and are safe for
// concurrent callers.
type Engine struct {
	cfg    Config
	ledger ledger.Ledger
	sink   EventSink
	log    Logger

	mu      sync.RWMutex
	slots   map[CertificateID]RootCertificate
	members map[AccountID]struct{}

	validity *cache.ValidityCache[CertificateID]
}

type Option func(*Engine)

func WithEventSink(sink EventSink) Option {
	return func(e *Engine) { e.sink = sink }
}

func WithLogger(l Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithValidityCache wires an LRU cache of IsRootCertificateValid results.
// Without this option validity is recomputed on every call.
func WithValidityCache(c *cache.ValidityCache[CertificateID]) Option {
	return func(e *Engine) { e.validity = c }
}

func NewEngine(cfg Config, l ledger.Ledger, opts ...Option) *Engine {
	e := &Engine{
		cfg:     cfg,
		ledger:  l,
		sink:    NoOpEventSink{},
		log:     noOpLogger{},
		slots:   make(map[CertificateID]RootCertificate),
		members: make(map[AccountID]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot returns a deep copy of the slot table, for
// internal/store/snapshot to serialize.
func (e *Engine) Snapshot() map[CertificateID]RootCertificate {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[CertificateID]RootCertificate, len(e.slots))
	for k, v := range e.slots {
		cp := v
		cp.ChildRevocations = append([]CertificateID(nil), v.ChildRevocations...)
		out[k] = cp
	}
	return out
}

// Restore replaces the slot table wholesale, for
// internal/store/snapshot to load a checkpoint at startup.
func (e *Engine) Restore(slots map[CertificateID]RootCertificate) {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[CertificateID]RootCertificate, len(slots))
	for k, v := range slots {
		cp := v
		cp.ChildRevocations = append([]CertificateID(nil), v.ChildRevocations...)
		out[k] = cp
	}
	e.slots = out
	if e.validity != nil {
		e.validity.InvalidateAll()
	}
}

// IsMember reports whether account is in the current Members mirror.
func (e *Engine) IsMember(account AccountID) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.members[account]
	return ok
}

// ChangeMembersSorted implements internal/tcr.ChangeMembers: the engine
// replaces its Members mirror wholesale with the new sorted membership
// set and invalidates every cached validity result, since membership loss
// can flip any owned slot's validity.
func (e *Engine) ChangeMembersSorted(_, _, sortedMembership []AccountID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	members := make(map[AccountID]struct{}, len(sortedMembership))
	for _, a := range sortedMembership {
		members[a] = struct{}{}
	}
	e.members = members

	if e.validity != nil {
		e.validity.InvalidateAll()
	}
}

// BookSlot implements spec.md §4.2 book_slot(certificate_id).
func (e *Engine) BookSlot(caller AccountID, id CertificateID, now uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.members[caller]; !ok {
		return ErrNotAMember
	}
	if _, ok := e.slots[id]; ok {
		return ErrSlotTaken
	}
	if err := e.withdrawFee(caller, e.cfg.SlotBookingCost); err != nil {
		return err
	}

	e.slots[id] = RootCertificate{
		Owner:    caller,
		Key:      id,
		Created:  now,
		Renewed:  now,
		Revoked:  false,
		Validity: e.cfg.SlotValidity,
	}
	if e.validity != nil {
		e.validity.Invalidate(id)
	}
	e.sink.Emit(SlotTaken{Owner: caller, CertificateID: id})
	e.log.Info("slot %s booked by %s", id, caller)
	return nil
}

// RenewSlot implements spec.md §4.2 renew_slot(certificate_id).
func (e *Engine) RenewSlot(caller AccountID, id CertificateID, now uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	slot, ok := e.slots[id]
	if !ok {
		return ErrSlotNotFound
	}
	if !e.isValidLocked(slot, now) {
		return ErrNoLongerValid
	}
	if slot.Owner != caller {
		return ErrNotTheOwner
	}
	if err := e.withdrawFee(caller, e.cfg.SlotRenewingCost); err != nil {
		return err
	}

	slot.Renewed = now
	e.slots[id] = slot
	if e.validity != nil {
		e.validity.Invalidate(id)
	}
	e.sink.Emit(SlotRenewed{Owner: caller, CertificateID: id})
	return nil
}

// withdrawFee withdraws cost from caller and sends it to FundsCollector,
// composed entirely from the {reserve, unreserve, slash,
// deposit_into_existing} capability set: Reserve both checks and locks the
// funds atomically; Unreserve-then-Slash burns exactly cost from caller's
// free balance (the same composition internal/tcr uses to slash a loser's
// deposit); DepositIntoExisting credits the collector.
func (e *Engine) withdrawFee(caller AccountID, cost uint64) error {
	if cost == 0 {
		return nil
	}
	if err := e.ledger.Reserve(caller, cost); err != nil {
		return fmt.Errorf("%w: %v", ErrNotEnoughFunds, err)
	}
	if err := e.ledger.Unreserve(caller, cost); err != nil {
		e.log.Warn("withdrawFee: unreserve failed for %s: %v", caller, err)
	}
	burned, err := e.ledger.Slash(caller, cost)
	if err != nil {
		e.log.Warn("withdrawFee: slash failed for %s: %v", caller, err)
	}
	if err := e.ledger.DepositIntoExisting(e.cfg.FundsCollector, burned); err != nil {
		e.log.Warn("withdrawFee: credit to funds collector failed: %v", err)
	}
	return nil
}

// IsRootCertificateValid implements spec.md §4.2
// is_root_certificate_valid(cert).
func (e *Engine) IsRootCertificateValid(id CertificateID, now uint64) bool {
	if e.validity != nil {
		if v, ok := e.validity.Get(id, now); ok {
			return v
		}
	}

	e.mu.RLock()
	slot, ok := e.slots[id]
	valid := ok && e.isValidLocked(slot, now)
	e.mu.RUnlock()

	if e.validity != nil {
		var expiresAt uint64
		if ok {
			expiresAt = slot.Renewed + slot.Validity
		}
		e.validity.Set(id, valid, expiresAt)
	}
	return valid
}

// isValidLocked must be called with mu held (for read or write).
func (e *Engine) isValidLocked(slot RootCertificate, now uint64) bool {
	if slot.Revoked {
		return false
	}
	if slot.IsExpired(now) {
		return false
	}
	_, isMember := e.members[slot.Owner]
	return isMember
}

// IsChildCertificateValid implements spec.md §4.2
// is_child_certificate_valid(root, child). Signature verification is a
// documented future extension; this predicate never rejects on signature
// grounds, per spec.md §4.2 and the design note in §9(c).
func (e *Engine) IsChildCertificateValid(root, child CertificateID, now uint64) bool {
	if root == child {
		return false
	}
	if !e.IsRootCertificateValid(root, now) {
		return false
	}
	e.mu.RLock()
	slot := e.slots[root]
	e.mu.RUnlock()
	return !slot.HasRevokedChild(child)
}
