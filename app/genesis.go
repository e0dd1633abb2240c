package app

import (
	"encoding/json"
	"os"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// Genesis file format. AppState is passed to every Initializer.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState lockbox.Options `json:"app_state"`
}

// Validate returns an error if the genesis cannot initialize a chain.
func (g *Genesis) Validate() error {
	if !lockbox.IsValidChainID(g.ChainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", g.ChainID)
	}
	return nil
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "loading genesis file: %s", err)
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	if err := gen.Validate(); err != nil {
		return nil, err
	}
	return &gen, nil
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...lockbox.Initializer) lockbox.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []lockbox.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts lockbox.Options, kv lockbox.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

const chainIDKey = "_internal:chain_id"

// loadChainID returns the chain id stored if any
func loadChainID(kv lockbox.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv lockbox.KVStore, chainID string) error {
	if !lockbox.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", chainID)
	}
	k := []byte(chainIDKey)
	if ok, err := kv.Has(k); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	} else if ok {
		return errors.Wrap(errors.ErrState, "chain id already set")
	}
	return kv.Set(k, []byte(chainID))
}
