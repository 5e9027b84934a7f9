package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memSuite() *TestSuite {
	return NewTestSuite(func() (CacheableKVStore, func()) {
		return MemStore(), func() {}
	})
}

func TestMemStoreGetSet(t *testing.T) {
	memSuite().GetSet(t)
}

func TestMemStoreNestedCache(t *testing.T) {
	memSuite().NestedCache(t)
}

func TestMemStoreIteration(t *testing.T) {
	memSuite().Iteration(t)
}

func TestBTreeCacheableWritesThroughBatch(t *testing.T) {
	base := MemStore()
	wrapped := BTreeCacheable{KVStore: base}

	cache := wrapped.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("1")))
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))
	require.NoError(t, cache.Delete([]byte("a")))

	has, err := base.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, cache.Write())
	v, err := base.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)
	has, err = base.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestNonAtomicBatchRecordsOps(t *testing.T) {
	b := NewNonAtomicBatch(EmptyKVStore{})
	require.NoError(t, b.Set([]byte("k"), []byte("v")))
	require.NoError(t, b.Delete([]byte("k")))
	assert.Equal(t, []Op{SetOp([]byte("k"), []byte("v")), DelOp([]byte("k"))}, b.ShowOps())

	require.NoError(t, b.Write())
	assert.Empty(t, b.ShowOps())
}

func TestSliceIteratorPastEnd(t *testing.T) {
	it := NewSliceIterator([]Model{{Key: []byte("a"), Value: []byte("b")}})
	assert.True(t, it.Valid())
	require.NoError(t, it.Next())
	assert.False(t, it.Valid())
	assert.Error(t, it.Next())
}
