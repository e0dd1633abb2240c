package simplebox

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/x/escrow"
)

// OpenDepositMsg locks native coins paid by the trader.
type OpenDepositMsg struct {
	BoxKey  escrow.Key      `json:"box_key"`
	Trader  lockbox.Address `json:"trader"`
	Amount  *coin.Coin      `json:"amount"`
	SwapFee *coin.Coin      `json:"swap_fee"`
	TxFee   *coin.Coin      `json:"tx_fee"`
}

var _ lockbox.Msg = (*OpenDepositMsg)(nil)

func (OpenDepositMsg) Path() string {
	return "simplebox/deposit/open"
}

func (m *OpenDepositMsg) Validate() error {
	if err := m.BoxKey.Validate(); err != nil {
		return errors.Wrap(err, "box key")
	}
	if err := m.Trader.Validate(); err != nil {
		return errors.Wrap(err, "trader")
	}
	if err := validatePositive(m.Amount); err != nil {
		return errors.Wrap(err, "amount")
	}
	return validateFees(m.SwapFee, m.TxFee)
}

// OpenWithdrawMsg promises the beneficiary the native value of points.
type OpenWithdrawMsg struct {
	BoxKey      escrow.Key      `json:"box_key"`
	Beneficiary lockbox.Address `json:"beneficiary"`
	Points      *coin.Coin      `json:"points"`
	Price       uint64          `json:"price"`
	SwapFee     *coin.Coin      `json:"swap_fee"`
	TxFee       *coin.Coin      `json:"tx_fee"`
}

var _ lockbox.Msg = (*OpenWithdrawMsg)(nil)

func (OpenWithdrawMsg) Path() string {
	return "simplebox/withdraw/open"
}

func (m *OpenWithdrawMsg) Validate() error {
	if err := m.BoxKey.Validate(); err != nil {
		return errors.Wrap(err, "box key")
	}
	if err := m.Beneficiary.Validate(); err != nil {
		return errors.Wrap(err, "beneficiary")
	}
	if err := validatePositive(m.Points); err != nil {
		return errors.Wrap(err, "points")
	}
	if m.Price == 0 {
		return errors.Wrap(errors.ErrInput, "price must not be zero")
	}
	return validateFees(m.SwapFee, m.TxFee)
}

// CloseDepositMsg settles a deposit box.
type CloseDepositMsg struct {
	BoxKey escrow.Key `json:"box_key"`
}

var _ lockbox.Msg = (*CloseDepositMsg)(nil)

func (CloseDepositMsg) Path() string {
	return "simplebox/deposit/close"
}

func (m *CloseDepositMsg) Validate() error {
	return errors.Wrap(m.BoxKey.Validate(), "box key")
}

// CloseWithdrawMsg settles a withdraw box at the given price.
type CloseWithdrawMsg struct {
	BoxKey escrow.Key `json:"box_key"`
	Price  uint64     `json:"price"`
}

var _ lockbox.Msg = (*CloseWithdrawMsg)(nil)

func (CloseWithdrawMsg) Path() string {
	return "simplebox/withdraw/close"
}

func (m *CloseWithdrawMsg) Validate() error {
	if err := m.BoxKey.Validate(); err != nil {
		return errors.Wrap(err, "box key")
	}
	if m.Price == 0 {
		return errors.Wrap(errors.ErrInput, "price must not be zero")
	}
	return nil
}

// UpdateConfigurationMsg patches the configuration. Only the owner can
// sign it.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

var _ lockbox.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return "simplebox/update_configuration"
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrMsg, "patch required")
	}
	return nil
}

func validatePositive(c *coin.Coin) error {
	if coin.IsEmpty(c) || !c.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}
	return c.Validate()
}

func validateFees(swapFee, txFee *coin.Coin) error {
	if err := validateFee(swapFee); err != nil {
		return errors.Wrap(err, "swap fee")
	}
	if err := validateFee(txFee); err != nil {
		return errors.Wrap(err, "tx fee")
	}
	return nil
}
