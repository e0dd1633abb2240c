package cash

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
)

const maxMemoSize int = 128

// SendMsg moves coins between two wallets.
type SendMsg struct {
	Source      lockbox.Address `json:"source"`
	Destination lockbox.Address `json:"destination"`
	Amount      *coin.Coin      `json:"amount"`
	Memo        string          `json:"memo,omitempty"`
}

var _ lockbox.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message.
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible.
func (m *SendMsg) Validate() error {
	if coin.IsEmpty(m.Amount) || !m.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %v", m.Amount)
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	return nil
}

// ApproveMsg sets the amount that the spender may pull from the owner's
// wallet. A zero amount revokes the allowance of that ticker.
type ApproveMsg struct {
	Owner   lockbox.Address `json:"owner"`
	Spender lockbox.Address `json:"spender"`
	Amount  *coin.Coin      `json:"amount"`
}

var _ lockbox.Msg = (*ApproveMsg)(nil)

// Path returns the routing path for this message.
func (ApproveMsg) Path() string {
	return "cash/approve"
}

// Validate makes sure that this is sensible.
func (m *ApproveMsg) Validate() error {
	if m.Amount == nil {
		return errors.Wrap(errors.ErrAmount, "amount required")
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !m.Amount.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative amount")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := m.Spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	if m.Owner.Equals(m.Spender) {
		return errors.Wrap(errors.ErrInput, "owner cannot approve itself")
	}
	return nil
}
