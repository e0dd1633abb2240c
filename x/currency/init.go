package currency

import (
	"github.com/iov-one/lockbox"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ lockbox.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial asset info from genesis and save it to the
// database
func (*Initializer) FromGenesis(opts lockbox.Options, kv lockbox.KVStore) error {
	var tokens []struct {
		Ticker  string `json:"ticker"`
		Name    string `json:"name"`
		SigFigs int32  `json:"sig_figs"`
	}
	if err := opts.ReadOptions("currencies", &tokens); err != nil {
		return err
	}

	bucket := NewTokenInfoBucket()
	for _, t := range tokens {
		if err := bucket.Register(kv, t.Ticker, &TokenInfo{Name: t.Name, SigFigs: t.SigFigs}); err != nil {
			return err
		}
	}
	return nil
}
