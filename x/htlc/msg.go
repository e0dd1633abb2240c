package htlc

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/x/escrow"
)

// OpenDepositMsg locks the trader's asset until the withdrawer reveals the
// secret or the box expires.
type OpenDepositMsg struct {
	BoxKey     escrow.Key      `json:"box_key"`
	Trader     lockbox.Address `json:"trader"`
	Withdrawer lockbox.Address `json:"withdrawer"`
	Amount     *coin.Coin      `json:"amount"`
	SecretHash HexBytes        `json:"secret_hash"`
}

var _ lockbox.Msg = (*OpenDepositMsg)(nil)

func (OpenDepositMsg) Path() string {
	return "htlc/deposit/open"
}

func (m *OpenDepositMsg) Validate() error {
	return validateOpen(m.BoxKey, m.Trader, m.Withdrawer, m.Amount, m.SecretHash)
}

// OpenWithdrawMsg promises the withdrawer an amount held in custody once
// the secret is revealed.
type OpenWithdrawMsg struct {
	BoxKey     escrow.Key      `json:"box_key"`
	Trader     lockbox.Address `json:"trader"`
	Withdrawer lockbox.Address `json:"withdrawer"`
	Amount     *coin.Coin      `json:"amount"`
	SecretHash HexBytes        `json:"secret_hash"`
}

var _ lockbox.Msg = (*OpenWithdrawMsg)(nil)

func (OpenWithdrawMsg) Path() string {
	return "htlc/withdraw/open"
}

func (m *OpenWithdrawMsg) Validate() error {
	return validateOpen(m.BoxKey, m.Trader, m.Withdrawer, m.Amount, m.SecretHash)
}

// CloseMsg reveals the secret of a box.
type CloseMsg struct {
	Direction Direction  `json:"direction"`
	BoxKey    escrow.Key `json:"box_key"`
	Secret    HexBytes   `json:"secret"`
}

var _ lockbox.Msg = (*CloseMsg)(nil)

func (CloseMsg) Path() string {
	return "htlc/close"
}

func (m *CloseMsg) Validate() error {
	if err := m.Direction.Validate(); err != nil {
		return err
	}
	if err := m.BoxKey.Validate(); err != nil {
		return errors.Wrap(err, "box key")
	}
	if len(m.Secret) == 0 {
		return errors.Wrap(errors.ErrInput, "secret required")
	}
	return nil
}

// ExpireMsg expires a box whose time lock elapsed.
type ExpireMsg struct {
	Direction Direction  `json:"direction"`
	BoxKey    escrow.Key `json:"box_key"`
}

var _ lockbox.Msg = (*ExpireMsg)(nil)

func (ExpireMsg) Path() string {
	return "htlc/expire"
}

func (m *ExpireMsg) Validate() error {
	if err := m.Direction.Validate(); err != nil {
		return err
	}
	return errors.Wrap(m.BoxKey.Validate(), "box key")
}

// UpdateConfigurationMsg patches the configuration. Only the owner can
// sign it.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

var _ lockbox.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return "htlc/update_configuration"
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrMsg, "patch required")
	}
	return nil
}

func validateOpen(key escrow.Key, trader, withdrawer lockbox.Address, amount *coin.Coin, secretHash []byte) error {
	if err := key.Validate(); err != nil {
		return errors.Wrap(err, "box key")
	}
	if err := trader.Validate(); err != nil {
		return errors.Wrap(err, "trader")
	}
	if err := withdrawer.Validate(); err != nil {
		return errors.Wrap(err, "withdrawer")
	}
	if coin.IsEmpty(amount) || !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if len(secretHash) != HashSize {
		return errors.Wrapf(errors.ErrInput, "secret hash must be %d bytes", HashSize)
	}
	return nil
}
