package ledger

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/orm"
	"github.com/iov-one/lockbox/x/cash"
)

// Validate ensures that the balance is normalized and non negative.
func (e *Entry) Validate() error {
	if err := e.Balance.Validate(); err != nil {
		return errors.Wrap(err, "balance")
	}
	if !e.Balance.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return nil
}

// NewEntryBucket returns a bucket storing entries under the account
// address.
func NewEntryBucket() orm.ModelBucket {
	return orm.NewModelBucket("ledger", &Entry{})
}

// Ledger is the single service through which every entry is read and
// modified.
type Ledger struct {
	entries orm.ModelBucket
	vault   cash.Custodian
}

// NewLedger returns a ledger whose entries are claims on the custody of
// given vault.
func NewLedger(vault cash.Custodian) Ledger {
	return Ledger{
		entries: NewEntryBucket(),
		vault:   vault,
	}
}

// Entry returns the entry of given account. A missing entry is returned as
// an empty one.
func (l Ledger) Entry(db lockbox.ReadOnlyKVStore, addr lockbox.Address) (*Entry, error) {
	var e Entry
	switch err := l.entries.One(db, addr, &e); {
	case err == nil:
		return &e, nil
	case errors.ErrNotFound.Is(err):
		return &Entry{}, nil
	default:
		return nil, errors.Wrap(err, "cannot load entry")
	}
}

// Balance returns how much of given asset the account owns.
func (l Ledger) Balance(db lockbox.ReadOnlyKVStore, addr lockbox.Address, ticker string) (coin.Coin, error) {
	e, err := l.Entry(db, addr)
	if err != nil {
		return coin.Coin{}, err
	}
	return e.Balance.Get(ticker), nil
}

// Credit increases the entry of given account. Zero amount is a no-op.
func (l Ledger) Credit(db lockbox.KVStore, addr lockbox.Address, amount coin.Coin) error {
	if amount.IsZero() {
		return nil
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "cannot credit %s", amount)
	}
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "account")
	}
	e, err := l.Entry(db, addr)
	if err != nil {
		return err
	}
	if e.Balance, err = e.Balance.Clone().Add(amount); err != nil {
		return errors.Wrap(err, "credit")
	}
	return l.save(db, addr, e)
}

// Debit decreases the entry of given account. It fails with
// ErrInsufficientAmount if the entry does not cover the amount.
func (l Ledger) Debit(db lockbox.KVStore, addr lockbox.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "cannot debit %s", amount)
	}
	e, err := l.Entry(db, addr)
	if err != nil {
		return err
	}
	if !e.Balance.Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "entry holds %s, need %s",
			e.Balance.Get(amount.Ticker), amount)
	}
	if e.Balance, err = e.Balance.Clone().Subtract(amount); err != nil {
		return errors.Wrap(err, "debit")
	}
	return l.save(db, addr, e)
}

// Move transfers the whole entry of one account into the entry of another.
// Balances are merged, so the destination never loses what it already
// owns. The source entry is removed. Moved coins are returned.
func (l Ledger) Move(db lockbox.KVStore, from, to lockbox.Address) (coin.Coins, error) {
	if from.Equals(to) {
		return nil, nil
	}
	src, err := l.Entry(db, from)
	if err != nil {
		return nil, err
	}
	if len(src.Balance) == 0 {
		return nil, nil
	}
	if err := to.Validate(); err != nil {
		return nil, errors.Wrap(err, "destination")
	}
	dst, err := l.Entry(db, to)
	if err != nil {
		return nil, err
	}
	if dst.Balance, err = dst.Balance.Combine(src.Balance); err != nil {
		return nil, errors.Wrap(err, "merge")
	}
	if err := l.save(db, from, &Entry{}); err != nil {
		return nil, err
	}
	if err := l.save(db, to, dst); err != nil {
		return nil, err
	}
	return src.Balance, nil
}

// EnsureSolvent returns ErrInsufficientAmount if the custody does not hold
// the amount.
func (l Ledger) EnsureSolvent(db lockbox.ReadOnlyKVStore, amount coin.Coin) error {
	held, err := l.vault.Custody(db, amount.Ticker)
	if err != nil {
		return errors.Wrap(err, "custody")
	}
	if !held.IsGTE(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "custody holds %s, need %s", held, amount)
	}
	return nil
}

func (l Ledger) save(db lockbox.KVStore, addr lockbox.Address, e *Entry) error {
	if len(e.Balance) == 0 {
		if err := l.entries.Delete(db, addr); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	return l.entries.Put(db, addr, e)
}
