// Package leveldbstore backs internal/store/kv.DB with
// github.com/syndtr/goleveldb, offered as a selectable alternative engine
// to pebblestore, in the same adapted shape.
package leveldbstore

import (
	"context"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/NodleCode/PKI/internal/store/kv"
)

// DB wraps a *leveldb.DB to satisfy kv.DB.
type DB struct {
	db *leveldb.DB
}

// Open opens (creating if absent) a leveldb database at path.
func Open(path string) (*DB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("leveldbstore: open %s: %w", path, err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Read(_ context.Context, key []byte) ([]byte, error) {
	if d.db == nil {
		return nil, kv.ErrDBClosed
	}
	val, err := d.db.Get(key, nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, kv.ErrKeyNotFound
		}
		return nil, err
	}
	return val, nil
}

func (d *DB) Write(_ context.Context, key, value []byte) error {
	if d.db == nil {
		return kv.ErrDBClosed
	}
	return d.db.Put(key, value, nil)
}

func (d *DB) Delete(_ context.Context, key []byte) error {
	if d.db == nil {
		return kv.ErrDBClosed
	}
	return d.db.Delete(key, nil)
}

func (d *DB) Batch(_ context.Context, ops []kv.BatchOperation) error {
	if d.db == nil {
		return kv.ErrDBClosed
	}
	batch := new(leveldb.Batch)
	for _, op := range ops {
		switch op.Type {
		case kv.BatchPut:
			batch.Put(op.Key, op.Value)
		case kv.BatchDelete:
			batch.Delete(op.Key)
		default:
			return fmt.Errorf("leveldbstore: unknown batch operation type: %d", op.Type)
		}
	}
	return d.db.Write(batch, nil)
}

func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

func (d *DB) Iterator(_ context.Context, start, end []byte) (kv.Iterator, error) {
	if d.db == nil {
		return nil, kv.ErrDBClosed
	}
	rng := &util.Range{Start: start, Limit: end}
	return &kvIterator{iter: d.db.NewIterator(rng, nil)}, nil
}

type kvIterator struct {
	iter iterator.Iterator
}

func (it *kvIterator) Next() bool    { return it.iter.Next() }
func (it *kvIterator) Key() []byte   { return it.iter.Key() }
func (it *kvIterator) Value() []byte { return it.iter.Value() }
func (it *kvIterator) Error() error  { return it.iter.Error() }
func (it *kvIterator) Close() error  { it.iter.Release(); return nil }
