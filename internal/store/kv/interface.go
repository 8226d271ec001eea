// Package kv defines the key-value storage surface the TCR and
// Root-of-Trust engines' logical tables (Applications, Challenges,
// Members, Slots) are persisted through, grounded on the teacher's
// internal/storage/database.DB interface.
package kv

import "context"

// DB is the basic operation set any key-value engine must support. Keys
// are the fingerprinted identifiers spec.md §6 describes (e.g.
// "app/<account>", "slot/<certificate_id>"); encoding of values is the
// caller's concern (internal/store uses ugorji/go/codec's CBOR handle).
type DB interface {
	Read(ctx context.Context, key []byte) ([]byte, error)
	Write(ctx context.Context, key, value []byte) error
	Delete(ctx context.Context, key []byte) error
	Batch(ctx context.Context, ops []BatchOperation) error
	Iterator(ctx context.Context, start, end []byte) (Iterator, error)
	Close() error
}

// Iterator allows traversing over DB entries in key order.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Close() error
}

type BatchOperation struct {
	Type  BatchOpType
	Key   []byte
	Value []byte
}

type BatchOpType int

const (
	BatchPut BatchOpType = iota
	BatchDelete
)
