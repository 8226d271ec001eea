// Package harness wires the ledger, TCR engine, Root-of-Trust engine and
// their storage/observability dependencies into one runnable unit for
// cmd/pkid, the same role the teacher's internal/di.Container plays for
// goXRPLd's node services.
package harness

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/NodleCode/PKI/internal/config"
	"github.com/NodleCode/PKI/internal/di"
	"github.com/NodleCode/PKI/internal/ledger"
	"github.com/NodleCode/PKI/internal/rot"
	"github.com/NodleCode/PKI/internal/rot/cache"
	"github.com/NodleCode/PKI/internal/store/audit"
	"github.com/NodleCode/PKI/internal/store/index"
	"github.com/NodleCode/PKI/internal/store/kv"
	"github.com/NodleCode/PKI/internal/store/kv/leveldbstore"
	"github.com/NodleCode/PKI/internal/store/kv/pebblestore"
	"github.com/NodleCode/PKI/internal/store/snapshot"
	"github.com/NodleCode/PKI/internal/tcr"
)

// Harness holds every component built from a resolved config.Config. It is
// deliberately thin: no RPC surface, no networking, per spec.md's
// Non-goals on the RPC surface and node CLI.
type Harness struct {
	Container *di.Container

	Ledger   ledger.Ledger
	TCR      *tcr.Engine
	RoT      *rot.Engine
	KV       kv.DB
	Audit    audit.Recorder
	auditMgr *audit.Manager
}

// Build constructs every component and registers it in a di.Container,
// resolving the KV engine and (optionally) the audit backend concurrently
// via errgroup, mirroring the teacher's peermanagement overlay startup.
// The engines are constructed only once the audit backend is ready, since
// both are wired with an EventSink that records into it: every TCR
// resolution and Root-of-Trust slot event lands a row in the audit trail
// rather than going to a default no-op sink.
func Build(ctx context.Context, cfg *config.Config) (*Harness, error) {
	container := di.New()
	l := ledger.NewMemory()
	container.Register("ledger", l)

	h := &Harness{Container: container, Ledger: l}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		db, err := openKV(cfg.Storage)
		if err != nil {
			return fmt.Errorf("harness: open kv store: %w", err)
		}
		h.KV = db
		container.Register("kv", db)
		return nil
	})

	g.Go(func() error {
		if !cfg.Audit.Enabled {
			h.Audit = audit.NoOpRecorder{}
			return nil
		}
		mgr := audit.NewManager(audit.Config{Driver: cfg.Audit.Driver, DSN: cfg.Audit.DSN})
		if err := mgr.Open(gctx); err != nil {
			return fmt.Errorf("harness: open audit store: %w", err)
		}
		h.auditMgr = mgr
		h.Audit = mgr
		container.Register("audit", mgr)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	validityCache, err := cache.New[rot.CertificateID](cache.Config{MaxEntries: cfg.RoT.ValidityCacheSize})
	if err != nil {
		return nil, fmt.Errorf("harness: build validity cache: %w", err)
	}

	rotEngine := rot.NewEngine(cfg.RoT.ToEngineConfig(), l,
		rot.WithValidityCache(validityCache),
		rot.WithEventSink(rotAuditSink{rec: h.Audit}),
	)
	tcrEngine := tcr.NewEngine(cfg.TCR.ToEngineConfig(), l,
		tcr.WithChangeMembersSubscriber(rotEngine),
		tcr.WithEventSink(tcrAuditSink{rec: h.Audit}),
	)
	h.TCR = tcrEngine
	h.RoT = rotEngine
	container.Register("tcr", tcrEngine)
	container.Register("rot", rotEngine)

	return h, nil
}

func openKV(cfg config.StorageConfig) (kv.DB, error) {
	switch cfg.Engine {
	case "leveldb":
		return leveldbstore.Open(cfg.Path)
	default:
		return pebblestore.Open(cfg.Path)
	}
}

// Close releases every resource Build opened.
func (h *Harness) Close() error {
	var firstErr error
	if h.KV != nil {
		if err := h.KV.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if h.auditMgr != nil {
		if err := h.auditMgr.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// snapshotKey is the single fixed key a checkpoint is stored under.
var snapshotKey = []byte("snapshot")

// SaveSnapshot exports the current engine state through
// internal/store/snapshot and writes it to the KV store under a single
// fixed key, then rebuilds the per-account/per-certificate namespaced
// records internal/store/index maintains (app/<account>, chal/<account>,
// mem/<account>, slot/<certificate_id>, per spec.md §6), so a specific
// record can be read back without decoding the whole checkpoint blob.
func (h *Harness) SaveSnapshot(ctx context.Context) error {
	apps, chals, members := h.TCR.Snapshot()
	slots := h.RoT.Snapshot()
	state := snapshot.State{
		Applications: apps,
		Challenges:   chals,
		Members:      members,
		Slots:        slots,
	}
	encoded, err := snapshot.Encode(state)
	if err != nil {
		return err
	}
	if err := h.KV.Write(ctx, snapshotKey, encoded); err != nil {
		return err
	}
	return index.Rebuild(ctx, h.KV, index.State{
		Applications: apps,
		Challenges:   chals,
		Members:      members,
		Slots:        slots,
	})
}

// LoadSnapshot restores engine state from the last checkpoint written by
// SaveSnapshot, if one exists. It returns (false, nil) when no checkpoint
// is present yet, e.g. on first startup.
func (h *Harness) LoadSnapshot(ctx context.Context) (bool, error) {
	encoded, err := h.KV.Read(ctx, snapshotKey)
	if err != nil {
		if err == kv.ErrKeyNotFound {
			return false, nil
		}
		return false, err
	}
	state, err := snapshot.Decode(encoded)
	if err != nil {
		return false, err
	}
	h.TCR.Restore(state.Applications, state.Challenges, state.Members)
	h.RoT.Restore(state.Slots)
	return true, nil
}

// LookupMember reads a single member's record from the mem/ namespace
// internal/store/index maintains, without decoding a full checkpoint.
// The result reflects the state as of the last SaveSnapshot call, not the
// live in-memory engine.
func (h *Harness) LookupMember(ctx context.Context, account tcr.AccountID) (tcr.Application, bool, error) {
	return index.Application(ctx, h.KV, kv.MemPrefix, account)
}

// LookupSlot reads a single certificate's record from the slot/ namespace
// internal/store/index maintains, as of the last SaveSnapshot call.
func (h *Harness) LookupSlot(ctx context.Context, id rot.CertificateID) (rot.RootCertificate, bool, error) {
	return index.Slot(ctx, h.KV, id)
}
