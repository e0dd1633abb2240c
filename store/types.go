package store

import "github.com/iov-one/lockbox"

// Type aliases so that implementations of this package do not have to
// reference the root package for every signature.
type (
	ReadOnlyKVStore  = lockbox.ReadOnlyKVStore
	SetDeleter       = lockbox.SetDeleter
	KVStore          = lockbox.KVStore
	Batch            = lockbox.Batch
	CacheableKVStore = lockbox.CacheableKVStore
	KVCacheWrap      = lockbox.KVCacheWrap
	CommitKVStore    = lockbox.CommitKVStore
	CommitID         = lockbox.CommitID
)
