package store

import (
	"github.com/iov-one/lockbox/errors"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// cacheSize is the number of iavl nodes kept in memory.
const cacheSize = 10000

// CommitStore is the root store, an iavl tree persisted in a tendermint
// database. Writes of successfully processed transactions go to the working
// tree and become durable with the next Commit, which saves a new tree
// version. The commit hash is the root hash of that version.
type CommitStore struct {
	db   dbm.DB
	tree *iavl.MutableTree
	last CommitID
}

var _ CommitKVStore = (*CommitStore)(nil)

// NewCommitStore opens (or creates) a LevelDB database in given directory.
// Use "memdb" as the backend name to get a non persistent database.
func NewCommitStore(backend, name, dir string) (*CommitStore, error) {
	var db dbm.DB
	switch backend {
	case "memdb", "":
		db = dbm.NewMemDB()
	case "goleveldb":
		db = dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unsupported database backend %q", backend)
	}
	return NewCommitStoreFromDB(db)
}

// NewCommitStoreFromDB returns a store that is using given database. The
// latest saved version is loaded.
func NewCommitStoreFromDB(db dbm.DB) (*CommitStore, error) {
	tree := iavl.NewMutableTree(db, cacheSize)
	version, err := tree.Load()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "load tree: %s", err)
	}
	return &CommitStore{
		db:   db,
		tree: tree,
		last: CommitID{Version: version, Hash: tree.Hash()},
	}, nil
}

// Get returns the latest value, including writes not committed yet.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.Get(key)
	return val, nil
}

// Has returns true if the key is present, including writes not committed
// yet.
func (s *CommitStore) Has(key []byte) (bool, error) {
	return s.tree.Has(key), nil
}

// CacheWrap returns a cache wrap that once written, is part of the next
// commit.
func (s *CommitStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(s, NewNonAtomicBatch(treeWriter{tree: s.tree}), nil)
}

// Commit saves the working tree as a new version.
func (s *CommitStore) Commit() (CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		s.tree.Rollback()
		return CommitID{}, errors.Wrapf(errors.ErrDatabase, "save version: %s", err)
	}
	s.last = CommitID{Version: version, Hash: hash}
	return s.last, nil
}

// LatestVersion returns the last committed version.
func (s *CommitStore) LatestVersion() (CommitID, error) {
	return s.last, nil
}

// Close releases the database.
func (s *CommitStore) Close() error {
	s.db.Close()
	return nil
}

// treeWriter applies cache wrap writes to the working tree.
type treeWriter struct {
	tree *iavl.MutableTree
}

func (w treeWriter) Set(key, value []byte) error {
	// iavl refuses nil values
	if value == nil {
		value = []byte{}
	}
	w.tree.Set(key, value)
	return nil
}

func (w treeWriter) Delete(key []byte) error {
	w.tree.Remove(key)
	return nil
}
