package server

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/app"
	"github.com/iov-one/lockbox/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// GenOptions can parse command-line and flag to generate default app_state
// for the genesis file. This is application-specific.
type GenOptions func(args []string) (lockbox.Options, error)

// InitCmd writes the default configuration and a genesis file into the home
// directory. Existing files are never overwritten.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	var chainID string
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	initFlags.StringVar(&chainID, "chain-id", "lockbox-local", "id of the initialized chain")
	if err := initFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	cfgPath := filepath.Join(home, ConfigFile)
	if fileExists(cfgPath) {
		logger.Info("Found configuration", "path", cfgPath)
	} else {
		if err := SaveConfig(cfgPath, DefaultConfig()); err != nil {
			return err
		}
		logger.Info("Generated configuration", "path", cfgPath)
	}

	genPath := filepath.Join(home, GenesisFile)
	if fileExists(genPath) {
		logger.Info("Found genesis file", "path", genPath)
		return nil
	}
	var opts lockbox.Options
	if gen != nil {
		var err error
		if opts, err = gen(initFlags.Args()); err != nil {
			return errors.Wrap(err, "generate app state")
		}
	}
	genesis := app.Genesis{ChainID: chainID, AppState: opts}
	if err := genesis.Validate(); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := os.WriteFile(genPath, raw, 0o644); err != nil {
		return errors.Wrapf(errors.ErrInput, "write genesis: %s", err)
	}
	logger.Info("Generated genesis file", "path", genPath, "chain_id", chainID)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
