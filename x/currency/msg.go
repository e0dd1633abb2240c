package currency

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
)

// CreateMsg registers a new asset.
type CreateMsg struct {
	Ticker  string `json:"ticker"`
	Name    string `json:"name"`
	SigFigs int32  `json:"sig_figs,omitempty"`
}

var _ lockbox.Msg = (*CreateMsg)(nil)

func (CreateMsg) Path() string {
	return "currency/create"
}

func (m *CreateMsg) Validate() error {
	if !coin.IsCC(m.Ticker) {
		return errors.Wrapf(errors.ErrInput, "invalid ticker %q", m.Ticker)
	}
	t := TokenInfo{Name: m.Name, SigFigs: m.SigFigs}
	return t.Validate()
}
