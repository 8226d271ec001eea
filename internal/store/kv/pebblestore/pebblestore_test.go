package pebblestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NodleCode/PKI/internal/store/kv"
)

func TestDB_WriteReadDelete(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "pebble"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Write(ctx, []byte("app/A"), []byte("v1")))

	got, err := db.Read(ctx, []byte("app/A"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, db.Delete(ctx, []byte("app/A")))
	_, err = db.Read(ctx, []byte("app/A"))
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)
}

func TestDB_BatchAndIterator(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "pebble"))
	require.NoError(t, err)
	defer db.Close()

	ops := []kv.BatchOperation{
		{Type: kv.BatchPut, Key: []byte("slot/1"), Value: []byte("a")},
		{Type: kv.BatchPut, Key: []byte("slot/2"), Value: []byte("b")},
	}
	require.NoError(t, db.Batch(ctx, ops))

	it, err := db.Iterator(ctx, []byte("slot/"), []byte("slot/~"))
	require.NoError(t, err)
	defer it.Close()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	require.NoError(t, it.Error())
	assert.Equal(t, []string{"slot/1", "slot/2"}, keys)
}
