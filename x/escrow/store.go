package escrow

import (
	"reflect"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/orm"
)

// Record is a box of any variant.
type Record interface {
	orm.Model
	GetHeader() *Header
}

// Store persists the boxes of a single namespace. Boxes are appended to an
// arena under a sequence index and a key is mapped to its slot. A mapping
// is never removed, so a used key cannot be opened again.
type Store struct {
	arena orm.ModelBucket
	index orm.ModelBucket
	seq   orm.Sequence
	model reflect.Type
}

// NewStore returns a store for the given namespace. The namespace must be
// unique and between three and seven lower case letters or underscores long.
func NewStore(namespace string, r Record) Store {
	return Store{
		arena: orm.NewModelBucket(namespace, r),
		index: orm.NewModelBucket("ix_"+namespace, &Pointer{}),
		seq:   orm.NewSequence(namespace, "arena"),
		model: reflect.TypeOf(r).Elem(),
	}
}

// Create stores a new open box. ErrDuplicate is returned if the key was
// used before, whatever the state of that box.
func (s Store) Create(db lockbox.KVStore, r Record) error {
	h := r.GetHeader()
	if h == nil {
		return errors.Wrap(errors.ErrModel, "missing header")
	}
	if h.State != Open {
		return errors.Wrapf(errors.ErrState, "new box must be open, got %s", h.State)
	}
	if err := r.Validate(); err != nil {
		return errors.Wrap(err, "invalid box")
	}
	if err := s.RequireUnused(db, h.Key); err != nil {
		return err
	}
	n, err := s.seq.NextInt(db)
	if err != nil {
		return errors.Wrap(err, "arena index")
	}
	if err := s.arena.Put(db, orm.EncodeSequence(n), r); err != nil {
		return err
	}
	return s.index.Put(db, h.Key, &Pointer{Index: n})
}

// Load reads the box stored under the key into dest. ErrNotFound is
// returned if the key was never used.
func (s Store) Load(db lockbox.ReadOnlyKVStore, key Key, dest Record) error {
	slot, err := s.slot(db, key)
	if err != nil {
		return err
	}
	return s.arena.One(db, slot, dest)
}

// Has returns nil if a box with the key exists and ErrNotFound otherwise.
func (s Store) Has(db lockbox.ReadOnlyKVStore, key Key) error {
	return s.index.Has(db, key)
}

// RequireUnused returns ErrDuplicate if the key was ever used.
func (s Store) RequireUnused(db lockbox.ReadOnlyKVStore, key Key) error {
	switch err := s.index.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "box %s", key)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return nil
}

// Finish moves a stored open box into a terminal state and saves all
// other changes made to r.
func (s Store) Finish(db lockbox.KVStore, r Record, to State) error {
	h := r.GetHeader()
	if h == nil {
		return errors.Wrap(errors.ErrModel, "missing header")
	}
	slot, err := s.slot(db, h.Key)
	if err != nil {
		return err
	}
	stored := reflect.New(s.model).Interface().(Record)
	if err := s.arena.One(db, slot, stored); err != nil {
		return err
	}
	if err := Transition(stored.GetHeader().State, to); err != nil {
		return err
	}
	h.State = to
	return s.arena.Put(db, slot, r)
}

func (s Store) slot(db lockbox.ReadOnlyKVStore, key Key) ([]byte, error) {
	var ptr Pointer
	if err := s.index.One(db, key, &ptr); err != nil {
		return nil, errors.Wrapf(err, "box %s", key)
	}
	return orm.EncodeSequence(ptr.Index), nil
}
