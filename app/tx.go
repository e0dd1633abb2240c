package app

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/x/sigs"
)

// Tx is a transaction submitted through the API. Signers are established by
// the submitting environment.
type Tx struct {
	Msg     lockbox.Msg
	Signers []lockbox.Address
}

var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg implements lockbox.Tx.
func (tx *Tx) GetMsg() (lockbox.Msg, error) {
	return tx.Msg, nil
}

// GetSigners implements sigs.SignedTx.
func (tx *Tx) GetSigners() []lockbox.Address {
	return tx.Signers
}
