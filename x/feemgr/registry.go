package feemgr

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/gconf"
	"github.com/iov-one/lockbox/x/ledger"
)

// ConfigPkg is the name under which the configuration is stored.
const ConfigPkg = "feemgr"

// Role names a fee collector.
type Role string

const (
	RoleTxFee   Role = "TX_FEE"
	RoleSwapFee Role = "SWAP_FEE"
)

// Validate returns an error unless the role is known.
func (r Role) Validate() error {
	switch r {
	case RoleTxFee, RoleSwapFee:
		return nil
	}
	return errors.Wrapf(errors.ErrInput, "unknown role %q", string(r))
}

func (c *Configuration) Validate() error {
	if err := c.Manager.Validate(); err != nil {
		return errors.Wrap(err, "manager")
	}
	if err := c.TxFeeCollector.Validate(); err != nil {
		return errors.Wrap(err, "tx fee collector")
	}
	if err := c.SwapFeeCollector.Validate(); err != nil {
		return errors.Wrap(err, "swap fee collector")
	}
	return nil
}

// Collector returns the account currently collecting fees of given role.
func (c *Configuration) Collector(r Role) lockbox.Address {
	if r == RoleSwapFee {
		return c.SwapFeeCollector
	}
	return c.TxFeeCollector
}

func (c *Configuration) setCollector(r Role, addr lockbox.Address) {
	if r == RoleSwapFee {
		c.SwapFeeCollector = addr
	} else {
		c.TxFeeCollector = addr
	}
}

// Registry credits fees to the collectors and reassigns them.
type Registry struct {
	ledger ledger.Ledger
}

// NewRegistry returns a registry accruing fees in given ledger.
func NewRegistry(l ledger.Ledger) Registry {
	return Registry{ledger: l}
}

// Config loads the current configuration.
func (r Registry) Config(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, ConfigPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "fee manager configuration")
	}
	return &conf, nil
}

// Accrue credits the swap fee to the swap fee collector and the
// transaction fee to the transaction fee collector.
func (r Registry) Accrue(db lockbox.KVStore, swapFee, txFee coin.Coin) error {
	conf, err := r.Config(db)
	if err != nil {
		return err
	}
	if err := r.ledger.Credit(db, conf.SwapFeeCollector, swapFee); err != nil {
		return errors.Wrap(err, "swap fee")
	}
	if err := r.ledger.Credit(db, conf.TxFeeCollector, txFee); err != nil {
		return errors.Wrap(err, "tx fee")
	}
	return nil
}

// Reassign replaces the collector of given role. The old collector's entire
// ledger entry is merged into the new collector's entry. Reassigning to the
// current collector changes nothing. The previous collector and the moved
// coins are returned.
func (r Registry) Reassign(db lockbox.KVStore, role Role, collector lockbox.Address) (lockbox.Address, coin.Coins, error) {
	if err := role.Validate(); err != nil {
		return nil, nil, err
	}
	if err := collector.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "collector")
	}
	conf, err := r.Config(db)
	if err != nil {
		return nil, nil, err
	}
	old := conf.Collector(role)
	if old.Equals(collector) {
		return old, nil, nil
	}
	moved, err := r.ledger.Move(db, old, collector)
	if err != nil {
		return nil, nil, errors.Wrap(err, "migrate ledger entry")
	}
	conf.setCollector(role, collector)
	if err := gconf.Save(db, ConfigPkg, conf); err != nil {
		return nil, nil, err
	}
	return old, moved, nil
}
