package ledger

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
)

// DepositMsg adds liquidity. The amount is moved from the provider's
// wallet into custody and credited to the provider's entry.
type DepositMsg struct {
	Provider lockbox.Address `json:"provider"`
	Amount   *coin.Coin      `json:"amount"`
}

var _ lockbox.Msg = (*DepositMsg)(nil)

func (DepositMsg) Path() string {
	return "ledger/deposit"
}

func (m *DepositMsg) Validate() error {
	if err := m.Provider.Validate(); err != nil {
		return errors.Wrap(err, "provider")
	}
	return validateAmount(m.Amount)
}

// WithdrawMsg removes liquidity. The amount is paid from custody to the
// provider and debited from the provider's entry.
type WithdrawMsg struct {
	Provider lockbox.Address `json:"provider"`
	Amount   *coin.Coin      `json:"amount"`
}

var _ lockbox.Msg = (*WithdrawMsg)(nil)

func (WithdrawMsg) Path() string {
	return "ledger/withdraw"
}

func (m *WithdrawMsg) Validate() error {
	if err := m.Provider.Validate(); err != nil {
		return errors.Wrap(err, "provider")
	}
	return validateAmount(m.Amount)
}

func validateAmount(c *coin.Coin) error {
	if coin.IsEmpty(c) || !c.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	if err := c.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	return nil
}
