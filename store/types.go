// Package store provides the KVStore implementations used by the
// application. MemStore is an in-memory store for tests, BTreeCacheWrap
// adds savepoint semantics to any KVStore and the iavl subpackage
// provides the persistent, merkelized state.
package store

import feevault "github.com/iov-one/feevault"

// Storage types are referenced from here for shorter names everywhere.

type (
	ReadOnlyKVStore  = feevault.ReadOnlyKVStore
	SetDeleter       = feevault.SetDeleter
	KVStore          = feevault.KVStore
	Batch            = feevault.Batch
	Iterator         = feevault.Iterator
	CacheableKVStore = feevault.CacheableKVStore
	KVCacheWrap      = feevault.KVCacheWrap
	CommitKVStore    = feevault.CommitKVStore
	CommitID         = feevault.CommitID
	Model            = feevault.Model
)
