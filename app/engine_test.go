package app

import (
	"encoding/binary"
	"sync"
	"testing"
	"time"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/events"
	"github.com/iov-one/lockbox/lockboxtest"
	"github.com/iov-one/lockbox/lockboxtest/assert"
	"github.com/iov-one/lockbox/store"
	dbm "github.com/tendermint/tendermint/libs/db"
)

func newTestEngine(t testing.TB, h lockbox.Handler, opts ...Option) *Engine {
	t.Helper()
	s, err := store.NewCommitStore("memdb", "", "")
	assert.Nil(t, err)
	e, err := NewEngine(s, h, lockbox.NewQueryRouter(), opts...)
	assert.Nil(t, err)
	return e
}

func initEngine(t testing.TB, e *Engine) {
	t.Helper()
	assert.Nil(t, e.InitChain(&Genesis{ChainID: "lockbox-test"}, nil))
}

func TestEngineRequiresChain(t *testing.T) {
	e := newTestEngine(t, &lockboxtest.Handler{})
	tx := &lockboxtest.Tx{Msg: &lockboxtest.Msg{RoutePath: "test/msg"}}

	_, err := e.Deliver(tx)
	assert.IsErr(t, errors.ErrState, err)
	_, err = e.Check(tx)
	assert.IsErr(t, errors.ErrState, err)

	initEngine(t, e)
	assert.Equal(t, "lockbox-test", e.ChainID())
	_, err = e.Deliver(tx)
	assert.Nil(t, err)

	err = e.InitChain(&Genesis{ChainID: "another-chain"}, nil)
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, "lockbox-test", e.ChainID())
}

func TestEngineInitChainFailureLeavesNoState(t *testing.T) {
	e := newTestEngine(t, &lockboxtest.Handler{})
	failing := initializerFunc(func(opts lockbox.Options, db lockbox.KVStore) error {
		if err := db.Set([]byte("genesis"), []byte{1}); err != nil {
			return err
		}
		return errors.Wrap(errors.ErrInput, "broken genesis")
	})
	err := e.InitChain(&Genesis{ChainID: "lockbox-test"}, failing)
	assert.IsErr(t, errors.ErrInput, err)
	assert.Equal(t, "", e.ChainID())

	got, err := e.store.Get([]byte("genesis"))
	assert.Nil(t, err)
	assert.Nil(t, got)

	err = e.InitChain(&Genesis{ChainID: "x"}, nil)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestEngineDeliverIsAtomic(t *testing.T) {
	key := []byte("written")
	rec := &events.Recorder{}

	h := &lockboxtest.Handler{
		WriteKey:   key,
		DeliverErr: errors.Wrap(errors.ErrTransfer, "payout failed"),
		DeliverResult: lockbox.DeliverResult{
			Events: []lockbox.Event{{Kind: "test.opened"}},
		},
	}
	e := newTestEngine(t, h, WithEmitter(rec))
	initEngine(t, e)
	before := e.LastCommit()
	tx := &lockboxtest.Tx{Msg: &lockboxtest.Msg{RoutePath: "test/msg"}}

	_, err := e.Deliver(tx)
	assert.IsErr(t, errors.ErrTransfer, err)
	got, err := e.store.Get(key)
	assert.Nil(t, err)
	assert.Nil(t, got)
	assert.Equal(t, before, e.LastCommit())
	assert.Equal(t, 0, len(rec.Events()))

	h.DeliverErr = nil
	res, err := e.Deliver(tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res.Events))
	got, err = e.store.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, []byte{1}, got)
	assert.Equal(t, before.Version+1, e.LastCommit().Version)
	assert.Equal(t, []string{"test.opened"}, rec.Kinds())
}

func TestEngineCheckNeverPersists(t *testing.T) {
	e := newTestEngine(t, writingChecker{key: []byte("checked")})
	initEngine(t, e)
	before := e.LastCommit()

	_, err := e.Check(&lockboxtest.Tx{Msg: &lockboxtest.Msg{RoutePath: "test/msg"}})
	assert.Nil(t, err)
	got, err := e.store.Get([]byte("checked"))
	assert.Nil(t, err)
	assert.Nil(t, got)
	assert.Equal(t, before, e.LastCommit())
}

func TestEngineRecoversPanic(t *testing.T) {
	e := newTestEngine(t, panicHandler{})
	initEngine(t, e)
	tx := &lockboxtest.Tx{Msg: &lockboxtest.Msg{RoutePath: "test/msg"}}

	_, err := e.Deliver(tx)
	assert.IsErr(t, errors.ErrPanic, err)
	_, err = e.Check(tx)
	assert.IsErr(t, errors.ErrPanic, err)
}

func TestEngineClockNeverGoesBackwards(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ticks := []time.Time{
		start,
		start.Add(-time.Hour),
		start.Add(time.Minute),
	}
	var i int
	clock := func() time.Time {
		t := ticks[i]
		i++
		return t
	}

	var h timeHandler
	e := newTestEngine(t, &h, WithClock(clock))
	initEngine(t, e)
	tx := &lockboxtest.Tx{Msg: &lockboxtest.Msg{RoutePath: "test/msg"}}
	for range ticks {
		_, err := e.Deliver(tx)
		assert.Nil(t, err)
	}
	assert.Equal(t, []time.Time{start, start, start.Add(time.Minute)}, h.seen)
}

func TestEngineRestoresChainID(t *testing.T) {
	db := dbm.NewMemDB()
	s, err := store.NewCommitStoreFromDB(db)
	assert.Nil(t, err)
	e, err := NewEngine(s, &lockboxtest.Handler{}, lockbox.NewQueryRouter())
	assert.Nil(t, err)
	initEngine(t, e)
	commit := e.LastCommit()

	s, err = store.NewCommitStoreFromDB(db)
	assert.Nil(t, err)
	restarted, err := NewEngine(s, &lockboxtest.Handler{}, lockbox.NewQueryRouter())
	assert.Nil(t, err)
	assert.Equal(t, "lockbox-test", restarted.ChainID())
	assert.Equal(t, commit, restarted.LastCommit())
}

func TestEngineSerializesTransactions(t *testing.T) {
	e := newTestEngine(t, counterHandler{})
	initEngine(t, e)

	const workers = 8
	const perWorker = 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := e.Deliver(&lockboxtest.Tx{Msg: &lockboxtest.Msg{RoutePath: "test/count"}}); err != nil {
					t.Errorf("deliver: %s", err)
				}
			}
		}()
	}
	wg.Wait()

	raw, err := e.store.Get(counterKey)
	assert.Nil(t, err)
	assert.Equal(t, uint64(workers*perWorker), binary.BigEndian.Uint64(raw))
}

func TestEngineQuery(t *testing.T) {
	s, err := store.NewCommitStore("memdb", "", "")
	assert.Nil(t, err)
	qr := lockbox.NewQueryRouter()
	qr.Register("test/raw", lockbox.QueryHandlerFunc(func(db lockbox.ReadOnlyKVStore, key []byte) (interface{}, error) {
		return db.Get(key)
	}))
	e, err := NewEngine(s, &lockboxtest.Handler{WriteKey: []byte("box")}, qr)
	assert.Nil(t, err)
	initEngine(t, e)

	_, err = e.Deliver(&lockboxtest.Tx{Msg: &lockboxtest.Msg{RoutePath: "test/msg"}})
	assert.Nil(t, err)

	got, err := e.Query("test/raw", []byte("box"))
	assert.Nil(t, err)
	assert.Equal(t, []byte{1}, got)

	_, err = e.Query("test/unknown", []byte("box"))
	assert.IsErr(t, errors.ErrNotFound, err)
}

type initializerFunc func(lockbox.Options, lockbox.KVStore) error

func (fn initializerFunc) FromGenesis(opts lockbox.Options, db lockbox.KVStore) error {
	return fn(opts, db)
}

type panicHandler struct{}

func (panicHandler) Check(lockbox.Context, lockbox.KVStore, lockbox.Tx) (*lockbox.CheckResult, error) {
	panic("check")
}

func (panicHandler) Deliver(lockbox.Context, lockbox.KVStore, lockbox.Tx) (*lockbox.DeliverResult, error) {
	panic("deliver")
}

// writingChecker writes to the store during check.
type writingChecker struct {
	key []byte
}

func (w writingChecker) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	return &lockbox.CheckResult{}, db.Set(w.key, []byte{1})
}

func (w writingChecker) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	return &lockbox.DeliverResult{}, nil
}

// timeHandler records the block time of every delivered transaction.
type timeHandler struct {
	seen []time.Time
}

func (h *timeHandler) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	return &lockbox.CheckResult{}, nil
}

func (h *timeHandler) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	now, ok := lockbox.BlockTime(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrState, "no block time")
	}
	h.seen = append(h.seen, now)
	return &lockbox.DeliverResult{}, nil
}

var counterKey = []byte("counter")

// counterHandler increments a counter with a read-modify-write cycle.
type counterHandler struct{}

func (counterHandler) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	return &lockbox.CheckResult{}, nil
}

func (counterHandler) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	raw, err := db.Get(counterKey)
	if err != nil {
		return nil, err
	}
	var n uint64
	if raw != nil {
		n = binary.BigEndian.Uint64(raw)
	}
	var next [8]byte
	binary.BigEndian.PutUint64(next[:], n+1)
	return &lockbox.DeliverResult{}, db.Set(counterKey, next[:])
}
