package app

import (
	"context"
	"sync"
	"time"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/events"
	"github.com/tendermint/tendermint/libs/log"
)

// Engine executes transactions one at a time. Every transaction runs on a
// cache wrap of the committed store that is written and committed only when
// the handler succeeds, so all changes of a single call are applied
// atomically or not at all. Events of a successful transaction are published
// after the commit, in the order they were produced.
type Engine struct {
	mu sync.RWMutex

	store   lockbox.CommitKVStore
	handler lockbox.Handler
	queries lockbox.QueryRouter
	emitter events.Emitter
	logger  log.Logger
	now     func() time.Time

	chainID string
	last    time.Time
	commit  lockbox.CommitID
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the source of block time. Time reported by the clock is
// clamped so that it never goes backwards.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithEmitter sets the destination of events of committed transactions.
func WithEmitter(em events.Emitter) Option {
	return func(e *Engine) { e.emitter = em }
}

// WithLogger sets the logger passed to the handlers through the context.
func WithLogger(l log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine returns an engine processing transactions with given handler.
// If the store was initialized before, the chain id is restored from it.
func NewEngine(store lockbox.CommitKVStore, h lockbox.Handler, queries lockbox.QueryRouter, opts ...Option) (*Engine, error) {
	e := &Engine{
		store:   store,
		handler: h,
		queries: queries,
		emitter: events.NoopEmitter{},
		logger:  log.NewNopLogger(),
		now:     time.Now,
	}
	for _, fn := range opts {
		fn(e)
	}

	chainID, err := loadChainID(store)
	if err != nil {
		return nil, errors.Wrap(err, "load chain id")
	}
	e.chainID = chainID
	commit, err := store.LatestVersion()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	e.commit = commit
	return e, nil
}

// InitChain stores the chain id and runs the initializer against the genesis
// application state. A chain can be initialized only once.
func (e *Engine) InitChain(gen *Genesis, init lockbox.Initializer) error {
	if err := gen.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.chainID != "" {
		return errors.Wrapf(errors.ErrState, "chain %q already initialized", e.chainID)
	}
	cache := e.store.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if init != nil {
		if err := init.FromGenesis(gen.AppState, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "genesis")
		}
	}
	if err := e.persist(cache); err != nil {
		return err
	}
	e.chainID = gen.ChainID
	e.logger.Info("chain initialized", "chain_id", gen.ChainID, "version", e.commit.Version)
	return nil
}

// ChainID returns the id of the initialized chain or an empty string.
func (e *Engine) ChainID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.chainID
}

// LastCommit returns the reference of the latest persisted state.
func (e *Engine) LastCommit() lockbox.CommitID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.commit
}

// Deliver executes the transaction and persists its changes if it
// succeeds. On failure no state is modified and no event is published.
func (e *Engine) Deliver(tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	ctx := e.context(e.tick(), "deliver_tx", tx)
	cache := e.store.CacheWrap()
	res, err := e.deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := e.persist(cache); err != nil {
		return nil, err
	}
	for _, ev := range res.Events {
		e.emitter.Emit(ev)
	}
	return res, nil
}

func (e *Engine) deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (res *lockbox.DeliverResult, err error) {
	defer errors.Recover(&err)
	return e.handler.Deliver(ctx, db, tx)
}

// Check runs the validation part of the handler. Nothing is persisted.
func (e *Engine) Check(tx lockbox.Tx) (*lockbox.CheckResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	ctx := e.context(e.peek(), "check_tx", tx)
	cache := e.store.CacheWrap()
	defer cache.Discard()
	return e.check(ctx, cache, tx)
}

func (e *Engine) check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (res *lockbox.CheckResult, err error) {
	defer errors.Recover(&err)
	return e.handler.Check(ctx, db, tx)
}

// Query returns the model stored under given key, as exposed by the query
// handler registered for the path.
func (e *Engine) Query(path string, key []byte) (interface{}, error) {
	h := e.queries.Handler(path)
	if h == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no query handler for path %q", path)
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return h.Query(e.store, key)
}

// Close releases the store.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Close()
}

// persist writes the cache into the store and commits it. Must be called
// with the lock held.
func (e *Engine) persist(cache lockbox.KVCacheWrap) error {
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	commit, err := e.store.Commit()
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	e.commit = commit
	return nil
}

// tick returns the block time of the next transaction. Must be called with
// the lock held.
func (e *Engine) tick() time.Time {
	e.last = e.peek()
	return e.last
}

// peek returns what tick would return without advancing the clock.
func (e *Engine) peek() time.Time {
	now := e.now().UTC()
	if now.Before(e.last) {
		return e.last
	}
	return now
}

func (e *Engine) context(now time.Time, call string, tx lockbox.Tx) lockbox.Context {
	ctx := lockbox.WithChainID(context.Background(), e.chainID)
	ctx = lockbox.WithBlockTime(ctx, now)
	ctx = lockbox.WithLogger(ctx, e.logger)
	return lockbox.WithLogInfo(ctx,
		"call", call,
		"path", lockbox.GetPath(tx))
}
