package cash

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/orm"
)

// Controller is the functionality needed by cash.Handler and by every
// extension that moves coins.
type Controller interface {
	// Balance returns all coins held by given account.
	Balance(db lockbox.ReadOnlyKVStore, addr lockbox.Address) (coin.Coins, error)
	// MoveCoins moves the given amount from src to dest. If src does not
	// exist, or doesn't have sufficient coins, it fails.
	MoveCoins(db lockbox.KVStore, src, dest lockbox.Address, amount coin.Coin) error
	// IssueCoins adds the given amount of coins to the destination wallet.
	IssueCoins(db lockbox.KVStore, dest lockbox.Address, amount coin.Coin) error

	// Approve sets the amount of given ticker that the spender may pull
	// from the owner's wallet. Zero amount revokes the allowance.
	Approve(db lockbox.KVStore, owner, spender lockbox.Address, amount coin.Coin) error
	// Allowance returns how much of given ticker the spender may still
	// pull from the owner's wallet.
	Allowance(db lockbox.ReadOnlyKVStore, owner, spender lockbox.Address, ticker string) (coin.Coin, error)
	// TransferFrom moves coins from the owner's wallet to dest, consuming
	// the spender's allowance.
	TransferFrom(db lockbox.KVStore, spender, owner, dest lockbox.Address, amount coin.Coin) error
}

// BaseController is a simple implementation of the Controller interface. It
// uses the model buckets of this package.
type BaseController struct {
	wallets    orm.ModelBucket
	allowances orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller instance.
func NewController() BaseController {
	return BaseController{
		wallets:    NewWalletBucket(),
		allowances: NewAllowanceBucket(),
	}
}

func (c BaseController) Balance(db lockbox.ReadOnlyKVStore, addr lockbox.Address) (coin.Coins, error) {
	w, err := c.wallet(db, addr)
	if err != nil {
		return nil, err
	}
	return w.Coins, nil
}

func (c BaseController) wallet(db lockbox.ReadOnlyKVStore, addr lockbox.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.wallets.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}

func (c BaseController) save(db lockbox.KVStore, addr lockbox.Address, w *Wallet) error {
	if len(w.Coins) == 0 {
		if err := c.wallets.Delete(db, addr); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	return c.wallets.Put(db, addr, w)
}

func (c BaseController) MoveCoins(db lockbox.KVStore, src, dest lockbox.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}

	sender, err := c.wallet(db, src)
	if err != nil {
		return err
	}
	if len(sender.Coins) == 0 {
		return errors.Wrapf(errors.ErrEmpty, "wallet %s", src)
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "wallet %s holds %s, need %s",
			src, sender.Coins.Get(amount.Ticker), amount)
	}
	if sender.Coins, err = sender.Coins.Clone().Subtract(amount); err != nil {
		return errors.Wrap(err, "subtract")
	}

	recipient, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if recipient.Coins, err = recipient.Coins.Clone().Add(amount); err != nil {
		return errors.Wrap(err, "add")
	}

	if err := c.save(db, src, sender); err != nil {
		return err
	}
	return c.save(db, dest, recipient)
}

func (c BaseController) IssueCoins(db lockbox.KVStore, dest lockbox.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	w, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if w.Coins, err = w.Coins.Clone().Add(amount); err != nil {
		return errors.Wrap(err, "add")
	}
	return c.save(db, dest, w)
}

func (c BaseController) Approve(db lockbox.KVStore, owner, spender lockbox.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !amount.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative allowance")
	}
	key := AllowanceKey(owner, spender)
	a, err := c.allowance(db, key)
	if err != nil {
		return err
	}
	current := a.Coins.Get(amount.Ticker)
	delta, err := amount.Subtract(current)
	if err != nil {
		return err
	}
	if a.Coins, err = a.Coins.Clone().Add(delta); err != nil {
		return err
	}
	if len(a.Coins) == 0 {
		if err := c.allowances.Delete(db, key); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	return c.allowances.Put(db, key, a)
}

func (c BaseController) allowance(db lockbox.ReadOnlyKVStore, key []byte) (*Allowance, error) {
	var a Allowance
	switch err := c.allowances.One(db, key, &a); {
	case err == nil:
		return &a, nil
	case errors.ErrNotFound.Is(err):
		return &Allowance{}, nil
	default:
		return nil, errors.Wrap(err, "cannot load allowance")
	}
}

func (c BaseController) Allowance(db lockbox.ReadOnlyKVStore, owner, spender lockbox.Address, ticker string) (coin.Coin, error) {
	a, err := c.allowance(db, AllowanceKey(owner, spender))
	if err != nil {
		return coin.Coin{}, err
	}
	return a.Coins.Get(ticker), nil
}

func (c BaseController) TransferFrom(db lockbox.KVStore, spender, owner, dest lockbox.Address, amount coin.Coin) error {
	allowed, err := c.Allowance(db, owner, spender, amount.Ticker)
	if err != nil {
		return err
	}
	if !allowed.IsGTE(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "allowance %s, need %s", allowed, amount)
	}
	left, err := allowed.Subtract(amount)
	if err != nil {
		return err
	}
	if err := c.MoveCoins(db, owner, dest, amount); err != nil {
		return err
	}
	return c.Approve(db, owner, spender, left)
}
