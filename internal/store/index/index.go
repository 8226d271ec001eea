// Package index maintains a point-lookup view of TCR/RoT state in a
// kv.DB, namespaced per spec.md §6 (app/<account>, chal/<account>,
// mem/<account>, slot/<certificate_id>). internal/store/snapshot owns the
// full, LZ4-compressed checkpoint used to resume an engine at startup;
// this package exists alongside it so a single account or certificate can
// be read back by an operator or a future query surface without decoding
// that whole blob, exercising kv.DB's Batch and prefix Iterator the way
// the teacher's ledger manager indexes individual accounts rather than
// only ever replaying a full ledger close.
package index

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ugorji/go/codec"

	"github.com/NodleCode/PKI/internal/rot"
	"github.com/NodleCode/PKI/internal/store/kv"
	"github.com/NodleCode/PKI/internal/tcr"
)

var cborHandle codec.CborHandle

// State is the logical state to index, the same shape
// internal/store/snapshot.State carries.
type State struct {
	Applications map[tcr.AccountID]tcr.Application
	Challenges   map[tcr.AccountID]tcr.Application
	Members      map[tcr.AccountID]tcr.Application
	Slots        map[rot.CertificateID]rot.RootCertificate
}

// Rebuild replaces every record under the app/, chal/, mem/ and slot/
// namespaces in db with state, clearing each namespace with one batch and
// then writing its records with a second batch.
// It never touches keys outside those four namespaces.
func Rebuild(ctx context.Context, db kv.DB, state State) error {
	if err := rebuildApplications(ctx, db, kv.AppPrefix, state.Applications); err != nil {
		return fmt.Errorf("index: rebuild applications: %w", err)
	}
	if err := rebuildApplications(ctx, db, kv.ChalPrefix, state.Challenges); err != nil {
		return fmt.Errorf("index: rebuild challenges: %w", err)
	}
	if err := rebuildApplications(ctx, db, kv.MemPrefix, state.Members); err != nil {
		return fmt.Errorf("index: rebuild members: %w", err)
	}
	if err := rebuildSlots(ctx, db, state.Slots); err != nil {
		return fmt.Errorf("index: rebuild slots: %w", err)
	}
	return nil
}

func rebuildApplications(ctx context.Context, db kv.DB, prefix string, entries map[tcr.AccountID]tcr.Application) error {
	start, end := kv.PrefixBounds(prefix)
	if err := clearRange(ctx, db, start, end); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	ops := make([]kv.BatchOperation, 0, len(entries))
	for account, app := range entries {
		value, err := encode(app)
		if err != nil {
			return err
		}
		ops = append(ops, kv.BatchOperation{Type: kv.BatchPut, Key: []byte(prefix + string(account)), Value: value})
	}
	return db.Batch(ctx, ops)
}

func rebuildSlots(ctx context.Context, db kv.DB, slots map[rot.CertificateID]rot.RootCertificate) error {
	start, end := kv.PrefixBounds(kv.SlotPrefix)
	if err := clearRange(ctx, db, start, end); err != nil {
		return err
	}
	if len(slots) == 0 {
		return nil
	}
	ops := make([]kv.BatchOperation, 0, len(slots))
	for id, cert := range slots {
		value, err := encode(cert)
		if err != nil {
			return err
		}
		ops = append(ops, kv.BatchOperation{Type: kv.BatchPut, Key: kv.SlotKey(string(id)), Value: value})
	}
	return db.Batch(ctx, ops)
}

func clearRange(ctx context.Context, db kv.DB, start, end []byte) error {
	it, err := db.Iterator(ctx, start, end)
	if err != nil {
		return err
	}
	defer it.Close()

	var ops []kv.BatchOperation
	for it.Next() {
		ops = append(ops, kv.BatchOperation{Type: kv.BatchDelete, Key: append([]byte(nil), it.Key()...)})
	}
	if err := it.Error(); err != nil {
		return err
	}
	if len(ops) == 0 {
		return nil
	}
	return db.Batch(ctx, ops)
}

// Application looks up a single record by account under the given
// namespace prefix (kv.AppPrefix, kv.ChalPrefix or kv.MemPrefix).
func Application(ctx context.Context, db kv.DB, prefix string, account tcr.AccountID) (tcr.Application, bool, error) {
	raw, err := db.Read(ctx, []byte(prefix+string(account)))
	if err == kv.ErrKeyNotFound {
		return tcr.Application{}, false, nil
	}
	if err != nil {
		return tcr.Application{}, false, err
	}
	var app tcr.Application
	if err := decode(raw, &app); err != nil {
		return tcr.Application{}, false, err
	}
	return app, true, nil
}

// Slot looks up a single certificate's RootCertificate by id.
func Slot(ctx context.Context, db kv.DB, id rot.CertificateID) (rot.RootCertificate, bool, error) {
	raw, err := db.Read(ctx, kv.SlotKey(string(id)))
	if err == kv.ErrKeyNotFound {
		return rot.RootCertificate{}, false, nil
	}
	if err != nil {
		return rot.RootCertificate{}, false, err
	}
	var cert rot.RootCertificate
	if err := decode(raw, &cert); err != nil {
		return rot.RootCertificate{}, false, err
	}
	return cert, true, nil
}

func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := codec.NewEncoder(&buf, &cborHandle)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("index: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(data []byte, v interface{}) error {
	dec := codec.NewDecoder(bytes.NewReader(data), &cborHandle)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("index: decode: %w", err)
	}
	return nil
}
