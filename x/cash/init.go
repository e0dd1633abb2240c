package cash

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file. Address is
// using the lockbox.Address JSON format, so hex or bech32 instead of base64.
type GenesisAccount struct {
	Address lockbox.Address `json:"address"`
	Coins   coin.Coins      `json:"coins"`
}

// Initializer fulfils the lockbox.Initializer interface to load data from
// the genesis file.
type Initializer struct{}

var _ lockbox.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis and save it to
// the database.
func (Initializer) FromGenesis(opts lockbox.Options, kv lockbox.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	ctrl := NewController()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		for _, c := range acct.Coins {
			if c == nil || !c.IsPositive() {
				return errors.Wrapf(errors.ErrAmount, "account %d: non-positive coin", i)
			}
			if err := ctrl.IssueCoins(kv, acct.Address, *c); err != nil {
				return errors.Wrapf(err, "account %d", i)
			}
		}
	}
	return nil
}
