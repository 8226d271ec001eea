// Package cache provides a fast, invalidation-aware cache of recent
// is_root_certificate_valid results, grounded on the LRU pattern used by
// the ledger manager's LedgerCache. It is generic over the certificate id
// type rather than importing internal/rot directly, since internal/rot
// itself depends on this package to wire WithValidityCache.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Config holds validity-cache configuration.
type Config struct {
	// MaxEntries is the number of certificate validity results kept in
	// memory.
	MaxEntries int
}

// entry remembers a validity result together with the block number past
// which it is no longer trustworthy without recomputation. A cached true
// only holds while now < expiresAt; a cached false (owner revoked, not a
// member, or slot unknown) never ages back to true on its own, since
// those conditions only change via an explicit Invalidate/InvalidateAll.
type entry struct {
	valid     bool
	expiresAt uint64
}

// ValidityCache caches the result of rot.Engine.IsRootCertificateValid
// keyed by K (internal/rot.CertificateID); a cached true is additionally
// bounded by the expiry block passed to Set. It must still be
// invalidated on every ChangeMembers notification and on slot mutation
// (book/renew), since membership loss and revocation are not
// block-number-dependent.
type ValidityCache[K comparable] struct {
	entries *lru.Cache[K, entry]

	hits, misses uint64
}

// New builds a ValidityCache. A non-positive MaxEntries falls back to a
// default of 1024 entries.
func New[K comparable](cfg Config) (*ValidityCache[K], error) {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 1024
	}
	entries, err := lru.New[K, entry](cfg.MaxEntries)
	if err != nil {
		return nil, err
	}
	return &ValidityCache[K]{entries: entries}, nil
}

// Get returns a cached validity result for id as of now, and whether it
// is still trustworthy. A cached true that has aged past its expiresAt
// is treated as a miss, forcing the caller to recompute against current
// slot state rather than returning a stale true.
func (c *ValidityCache[K]) Get(id K, now uint64) (bool, bool) {
	e, ok := c.entries.Get(id)
	if ok && e.valid && now >= e.expiresAt {
		ok = false
	}
	if ok {
		c.hits++
		return e.valid, true
	}
	c.misses++
	return false, false
}

// Set records the validity result for id, computed as of now. expiresAt
// is the block number at which a cached true must be recomputed (the
// certificate's renewed+validity boundary); it is ignored when valid is
// false.
func (c *ValidityCache[K]) Set(id K, valid bool, expiresAt uint64) {
	c.entries.Add(id, entry{valid: valid, expiresAt: expiresAt})
}

// Invalidate drops a single certificate's cached result, used after
// book_slot/renew_slot mutate that slot.
func (c *ValidityCache[K]) Invalidate(id K) {
	c.entries.Remove(id)
}

// InvalidateAll drops every cached result, used on every membership change
// since membership loss can flip any owned slot's validity.
func (c *ValidityCache[K]) InvalidateAll() {
	c.entries.Purge()
}

// Stats returns cumulative hit/miss counts, for metrics wiring.
func (c *ValidityCache[K]) Stats() (hits, misses uint64) {
	return c.hits, c.misses
}
