package cash

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
)

// CustodyCondition derives the account that holds all value locked by the
// engine. No private key controls it, so only the Vault can move its coins.
var CustodyCondition = lockbox.NewCondition("cash", "custody", nil)

// Custodian is the asset transfer capability used by the settlement
// engines. Every failure of a transfer is reported as ErrTransfer and must
// abort the whole call.
type Custodian interface {
	// Address returns the custody account.
	Address() lockbox.Address
	// Receive moves the amount from the signer's wallet into custody.
	Receive(db lockbox.KVStore, from lockbox.Address, amount coin.Coin) error
	// TransferIn pulls a previously approved amount from the owner into
	// custody.
	TransferIn(db lockbox.KVStore, from lockbox.Address, amount coin.Coin) error
	// TransferOut pays the amount from custody to given account.
	TransferOut(db lockbox.KVStore, to lockbox.Address, amount coin.Coin) error
	// Allowance returns how much of a ticker the owner approved for
	// custody.
	Allowance(db lockbox.ReadOnlyKVStore, owner lockbox.Address, ticker string) (coin.Coin, error)
	// Custody returns how much of a ticker is held in custody.
	Custody(db lockbox.ReadOnlyKVStore, ticker string) (coin.Coin, error)
}

// Vault is the Custodian implementation backed by a cash Controller.
type Vault struct {
	ctrl Controller
	addr lockbox.Address
}

var _ Custodian = Vault{}

// NewVault returns a vault holding its coins at the CustodyCondition
// address.
func NewVault(ctrl Controller) Vault {
	return Vault{ctrl: ctrl, addr: CustodyCondition.Address()}
}

func (v Vault) Address() lockbox.Address {
	return v.addr
}

func (v Vault) Receive(db lockbox.KVStore, from lockbox.Address, amount coin.Coin) error {
	if err := v.ctrl.MoveCoins(db, from, v.addr, amount); err != nil {
		return transferErr(err, "receive %s from %s", amount, from)
	}
	return nil
}

func (v Vault) TransferIn(db lockbox.KVStore, from lockbox.Address, amount coin.Coin) error {
	if err := v.ctrl.TransferFrom(db, v.addr, from, v.addr, amount); err != nil {
		return transferErr(err, "pull %s from %s", amount, from)
	}
	return nil
}

func (v Vault) TransferOut(db lockbox.KVStore, to lockbox.Address, amount coin.Coin) error {
	if err := v.ctrl.MoveCoins(db, v.addr, to, amount); err != nil {
		return transferErr(err, "pay %s to %s", amount, to)
	}
	return nil
}

func (v Vault) Allowance(db lockbox.ReadOnlyKVStore, owner lockbox.Address, ticker string) (coin.Coin, error) {
	return v.ctrl.Allowance(db, owner, v.addr, ticker)
}

func (v Vault) Custody(db lockbox.ReadOnlyKVStore, ticker string) (coin.Coin, error) {
	coins, err := v.ctrl.Balance(db, v.addr)
	if err != nil {
		return coin.Coin{}, err
	}
	return coins.Get(ticker), nil
}

func transferErr(err error, format string, args ...interface{}) error {
	return errors.Wrapf(errors.ErrTransfer, format+": %s", append(args, err)...)
}
