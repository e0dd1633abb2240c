package server

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/app"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/events"
	api "github.com/iov-one/lockbox/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// Node is everything the start command needs to serve an application.
type Node struct {
	Engine      *app.Engine
	Decoder     api.MsgDecoder
	Hub         *events.Hub
	Gatherer    prometheus.Gatherer
	Initializer lockbox.Initializer
	// Close releases the resources of the node.
	Close func() error
}

// AppGenerator lets us lazily initialize the node, using home dir and the
// loaded configuration.
type AppGenerator func(home string, cfg *Config, logger log.Logger) (*Node, error)

const shutdownTimeout = 10 * time.Second

// StartCmd loads the configuration, initializes the chain from the genesis
// file on the first run and serves the HTTP API until the process is
// interrupted.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	var bind string
	var debug bool
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&bind, "bind", "", "address server listens on, overrides the configuration")
	startFlags.BoolVar(&debug, "debug", false, "call stack returned on error")
	if err := startFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	cfg, err := LoadConfig(filepath.Join(home, ConfigFile))
	if err != nil {
		return err
	}
	if bind != "" {
		cfg.ListenAddress = bind
	}
	cfg.Debug = cfg.Debug || debug
	if logger, err = FilterLogger(logger, cfg.LogLevel); err != nil {
		return err
	}

	node, err := gen(home, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := node.Close(); err != nil {
			logger.Error("cannot close node", "err", err)
		}
	}()

	if err := EnsureChain(node, filepath.Join(home, GenesisFile)); err != nil {
		return err
	}

	srv := &http.Server{
		Addr: cfg.ListenAddress,
		Handler: api.New(node.Engine, node.Decoder, node.Hub,
			api.WithLogger(logger.With("module", "api")),
			api.WithGatherer(node.Gatherer),
			api.WithDebug(cfg.Debug)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("Starting API server", "bind", cfg.ListenAddress, "chain_id", node.Engine.ChainID())

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errc:
		return errors.Wrapf(errors.ErrInput, "serve: %s", err)
	case s := <-sig:
		logger.Info("Shutting down", "signal", s.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// EnsureChain initializes the chain from the genesis file unless the store
// already holds an initialized chain.
func EnsureChain(node *Node, genesisPath string) error {
	if node.Engine.ChainID() != "" {
		return nil
	}
	gen, err := app.LoadGenesis(genesisPath)
	if err != nil {
		return err
	}
	return node.Engine.InitChain(gen, node.Initializer)
}
