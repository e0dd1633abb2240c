package server

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/app"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/lockboxtest"
	"github.com/iov-one/lockbox/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestInitCmd(t *testing.T) {
	home := t.TempDir()
	gen := func(args []string) (lockbox.Options, error) {
		return lockbox.Options{"note": json.RawMessage(`"` + args[0] + `"`)}, nil
	}

	err := InitCmd(gen, log.NewNopLogger(), home, []string{"-chain-id", "lockbox-one", "first"})
	require.NoError(t, err)

	cfg, err := LoadConfig(filepath.Join(home, ConfigFile))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	genesis, err := app.LoadGenesis(filepath.Join(home, GenesisFile))
	require.NoError(t, err)
	assert.Equal(t, "lockbox-one", genesis.ChainID)
	var note string
	require.NoError(t, genesis.AppState.ReadOptions("note", &note))
	assert.Equal(t, "first", note)

	// existing files are kept
	err = InitCmd(gen, log.NewNopLogger(), home, []string{"-chain-id", "lockbox-two", "second"})
	require.NoError(t, err)
	genesis, err = app.LoadGenesis(filepath.Join(home, GenesisFile))
	require.NoError(t, err)
	assert.Equal(t, "lockbox-one", genesis.ChainID)
}

func TestInitCmdRejectsInvalidChainID(t *testing.T) {
	home := t.TempDir()
	err := InitCmd(nil, log.NewNopLogger(), home, []string{"-chain-id", "no"})
	assert.True(t, errors.ErrInput.Is(err))
	_, statErr := os.Stat(filepath.Join(home, GenesisFile))
	assert.True(t, os.IsNotExist(statErr))
}

func TestEnsureChain(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, InitCmd(nil, log.NewNopLogger(), home, []string{"-chain-id", "lockbox-one"}))

	kv, err := store.NewCommitStore("memdb", "", "")
	require.NoError(t, err)
	engine, err := app.NewEngine(kv, &lockboxtest.Handler{}, lockbox.NewQueryRouter())
	require.NoError(t, err)
	node := &Node{Engine: engine, Close: engine.Close}

	genesis := filepath.Join(home, GenesisFile)
	require.NoError(t, EnsureChain(node, genesis))
	assert.Equal(t, "lockbox-one", engine.ChainID())
	version := engine.LastCommit().Version

	// a second call on an initialized chain is a no-op
	require.NoError(t, EnsureChain(node, genesis))
	assert.Equal(t, version, engine.LastCommit().Version)
}
