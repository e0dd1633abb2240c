package htlc

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/gconf"
	"github.com/iov-one/lockbox/x/escrow"
)

const (
	// ConfigPkg is the gconf key of the Configuration.
	ConfigPkg = "htlc"

	// MaxTimeLock is the longest time lock in seconds, ten years.
	MaxTimeLock int64 = 10 * 365 * 24 * 60 * 60
)

// Direction of a box, each with its own key namespace.
type Direction string

const (
	Deposit  Direction = "deposit"
	Withdraw Direction = "withdraw"
)

func (d Direction) Validate() error {
	switch d {
	case Deposit, Withdraw:
		return nil
	}
	return errors.Wrapf(errors.ErrInput, "unknown direction %q", d)
}

// NewStore returns the box store of given direction.
func NewStore(d Direction) escrow.Store {
	if d == Withdraw {
		return escrow.NewStore("ht_wd", &Box{})
	}
	return escrow.NewStore("ht_dep", &Box{})
}

func (m *Box) GetHeader() *escrow.Header {
	return m.Header
}

func (m *Box) Validate() error {
	if err := m.Header.Validate(); err != nil {
		return errors.Wrap(err, "header")
	}
	if m.TimeLock <= 0 || m.TimeLock > MaxTimeLock {
		return errors.Wrapf(errors.ErrModel, "time lock must be between 1 and %d seconds", MaxTimeLock)
	}
	if err := m.Withdrawer.Validate(); err != nil {
		return errors.Wrap(err, "withdrawer")
	}
	if len(m.SecretHash) != HashSize {
		return errors.Wrapf(errors.ErrModel, "secret hash must be %d bytes", HashSize)
	}
	if m.Header.State == escrow.Closed && len(m.Secret) == 0 {
		return errors.Wrap(errors.ErrModel, "closed box without a secret")
	}
	if _, err := Hasher(m.HashAlgorithm); err != nil {
		return err
	}
	return nil
}

// Policy returns the settlement policy of the box.
func (m *Box) Policy() (escrow.SecretAndTimeGated, error) {
	hash, err := Hasher(m.HashAlgorithm)
	if err != nil {
		return escrow.SecretAndTimeGated{}, err
	}
	return escrow.SecretAndTimeGated{
		SecretHash: m.SecretHash,
		TimeLock:   m.TimeLock,
		Hash:       hash,
	}, nil
}

func (c *Configuration) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := c.Manager.Validate(); err != nil {
		return errors.Wrap(err, "manager")
	}
	if c.DepositTimeLock <= 0 {
		return errors.Wrap(errors.ErrInput, "deposit time lock must be positive")
	}
	if c.DepositTimeLock > MaxTimeLock {
		return errors.Wrapf(errors.ErrInput, "deposit time lock longer than %d seconds", MaxTimeLock)
	}
	if c.WithdrawTimeLock < 0 {
		return errors.Wrap(errors.ErrInput, "negative withdraw time lock")
	}
	if c.WithdrawTimeLock >= c.DepositTimeLock {
		return errors.Wrap(errors.ErrInput, "withdraw time lock must be shorter than deposit time lock")
	}
	if c.DepositTimeLock < 2 && c.WithdrawTimeLock == 0 {
		return errors.Wrap(errors.ErrInput, "deposit time lock too short to derive withdraw time lock")
	}
	if _, err := Hasher(c.HashAlgorithm); err != nil {
		return err
	}
	return nil
}

func (c *Configuration) GetOwner() lockbox.Address {
	return c.Owner
}

// TimeLock returns the time lock in seconds for boxes of given direction.
func (c *Configuration) TimeLock(d Direction) int64 {
	if d == Deposit {
		return c.DepositTimeLock
	}
	if c.WithdrawTimeLock == 0 {
		return c.DepositTimeLock / 2
	}
	return c.WithdrawTimeLock
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, ConfigPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "htlc configuration")
	}
	return &conf, nil
}
