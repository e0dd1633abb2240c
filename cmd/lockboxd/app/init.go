package app

import (
	"encoding/json"
	"path/filepath"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/app"
	"github.com/iov-one/lockbox/commands/server"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/events"
	"github.com/iov-one/lockbox/store"
	"github.com/iov-one/lockbox/x"
	"github.com/iov-one/lockbox/x/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	nativeTicker = "LBX"
	pointTicker  = "PTS"
)

// GenInitOptions creates the default app state. The operator address given
// as the only argument manages every module, collects all fees and owns the
// initial supply of the native asset.
func GenInitOptions(args []string) (lockbox.Options, error) {
	if len(args) != 1 {
		return nil, errors.Wrap(errors.ErrInput, "operator address required")
	}
	operator, err := lockbox.ParseAddress(args[0])
	if err != nil {
		return nil, errors.Wrap(err, "operator address")
	}
	if err := operator.Validate(); err != nil {
		return nil, errors.Wrap(err, "operator address")
	}

	state := map[string]interface{}{
		"cash": []interface{}{
			map[string]interface{}{"address": operator, "coins": []string{"1000000 " + nativeTicker}},
		},
		"currencies": []interface{}{
			map[string]interface{}{"ticker": nativeTicker, "name": "Lockbox native token", "sig_figs": 9},
		},
		"conf": map[string]interface{}{
			"feemgr": map[string]interface{}{
				"manager":            operator,
				"tx_fee_collector":   operator,
				"swap_fee_collector": operator,
			},
			"simplebox": map[string]interface{}{
				"owner":         operator,
				"manager":       operator,
				"native_ticker": nativeTicker,
				"point_ticker":  pointTicker,
				"unit":          100,
			},
			"htlc": map[string]interface{}{
				"owner":             operator,
				"manager":           operator,
				"deposit_time_lock": 24 * 60 * 60,
				"hash_algorithm":    "sha256",
			},
		},
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	var opts lockbox.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return opts, nil
}

// GenerateApp builds the node from the configuration: persistent store,
// handler stack, metrics and event publishers.
func GenerateApp(home string, cfg *server.Config, logger log.Logger) (*server.Node, error) {
	var issuer lockbox.Address
	if cfg.CurrencyIssuer != "" {
		var err error
		if issuer, err = lockbox.ParseAddress(cfg.CurrencyIssuer); err != nil {
			return nil, errors.Wrap(err, "currency issuer")
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := utils.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	handler, router := Stack(issuer, x.NewPauseSet(cfg.PausedModules...), metrics)

	hub := events.NewHub()
	emitter := events.Multi{hub}
	closers := []func() error{}
	if cfg.NATSURL != "" {
		conn, err := events.ConnectNATS(cfg.NATSURL, "lockboxd")
		if err != nil {
			return nil, err
		}
		emitter = append(emitter, events.NewNATSEmitter(conn, cfg.NATSSubjectPrefix, logger))
		closers = append(closers, func() error { conn.Close(); return nil })
		logger.Info("Publishing events", "nats", cfg.NATSURL, "prefix", cfg.NATSSubjectPrefix)
	}

	kv, err := store.NewCommitStore(cfg.DBBackend, "lockbox", filepath.Join(home, "data"))
	if err != nil {
		return nil, err
	}
	engine, err := app.NewEngine(kv, handler, QueryRouter(),
		app.WithEmitter(emitter),
		app.WithLogger(logger.With("module", "engine")))
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	closers = append(closers, engine.Close)

	return &server.Node{
		Engine:      engine,
		Decoder:     router,
		Hub:         hub,
		Gatherer:    reg,
		Initializer: Initializers(),
		Close: func() error {
			var first error
			for i := len(closers) - 1; i >= 0; i-- {
				if err := closers[i](); err != nil && first == nil {
					first = err
				}
			}
			return first
		},
	}, nil
}
