package cash

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/orm"
)

const (
	walletBucket    = "cash"
	allowanceBucket = "allowance"
)

// Validate requires that all coins are in alphabetical order and positive.
func (w *Wallet) Validate() error {
	if err := w.Coins.Validate(); err != nil {
		return err
	}
	if !w.Coins.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return nil
}

// Validate requires that all coins are in alphabetical order and positive.
func (a *Allowance) Validate() error {
	if err := a.Coins.Validate(); err != nil {
		return err
	}
	if !a.Coins.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative allowance")
	}
	return nil
}

// NewWalletBucket returns a bucket storing wallets under the owner address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket(walletBucket, &Wallet{})
}

// NewAllowanceBucket returns a bucket storing allowances under the
// AllowanceKey.
func NewAllowanceBucket() orm.ModelBucket {
	return orm.NewModelBucket(allowanceBucket, &Allowance{})
}

// AllowanceKey returns the key of an allowance given by the owner to the
// spender.
func AllowanceKey(owner, spender lockbox.Address) []byte {
	key := make([]byte, 0, len(owner)+len(spender))
	key = append(key, owner...)
	return append(key, spender...)
}
