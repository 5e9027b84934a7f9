package feevault

// ReadOnlyKVStore is a simple interface to query data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists.
	Has(key []byte) (bool, error)

	// Iterator over a domain of keys in ascending order. End is exclusive.
	// Start must be less than end, or the Iterator is invalid. A nil
	// boundary means no limit on that side.
	//
	// No writes may happen within a domain while an iterator exists over
	// it.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator over a domain of keys in descending order. End is
	// exclusive.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is a minimal interface for writing. It is unified by
// KVStore and Batch.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is a simple interface to get and set data.
//
// For simplicity, all backing stores are required to implement this
// interface. They may implement other methods as well.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	// NewBatch returns a batch that can write to this store later.
	NewBatch() Batch
}

// Batch can write multiple operations to a KVStore at once. Write must
// apply all operations or none.
type Batch interface {
	SetDeleter
	Write() error
}

/*
Iterator allows access to a set of items within a range of keys. These
may all be preloaded, or loaded on demand.

  Usage:

  itr, err := db.Iterator(start, end)
  ...
  defer itr.Close()
  for ; itr.Valid(); err = itr.Next() {
    k, v := itr.Key(), itr.Value()
    // ...
  }
*/
type Iterator interface {
	// Valid returns whether the current position is valid. Once
	// invalid, an Iterator is forever invalid.
	Valid() bool

	// Next moves the iterator to the next sequential key. Calling it on
	// an invalid iterator returns an error.
	Next() error

	// Key returns the key of the cursor. The slice must not be modified.
	Key() []byte

	// Value returns the value of the cursor. The slice must not be
	// modified.
	Value() []byte

	// Close releases the Iterator.
	Close()
}

// CacheableKVStore is a KVStore that supports cache wrapping.
//
// CacheWrap does not return a committer. Committing a cache wrap makes
// no sense.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap maintains a scratch pad of uncommitted data that is visible
// to all queries. Call Write to use the cached data, or Discard to drop
// it. This is the SAVEPOINT / ROLLBACK TO SAVEPOINT of a KVStore.
type KVCacheWrap interface {
	CacheableKVStore

	// Write syncs with the underlying store.
	Write() error

	// Discard invalidates this CacheWrap and releases all data.
	Discard()
}

// CommitKVStore is a store that persists state to disk, loads it on start
// up and maintains some history.
type CommitKVStore interface {
	// Get returns the value at the last committed state.
	Get(key []byte) ([]byte, error)

	// CacheWrap returns a working copy of the state.
	CacheWrap() KVCacheWrap

	// Commit persists the next version and returns its identity.
	Commit() (CommitID, error)

	// LoadLatestVersion loads the latest persisted version. If there was
	// a crash during the last commit, it is guaranteed to return a
	// stable state, even if older.
	LoadLatestVersion() error

	// LatestVersion returns info on the latest version saved to disk.
	LatestVersion() (CommitID, error)
}

// CommitID contains the tree version number and its merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
