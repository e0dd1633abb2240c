package feemgr

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/gconf"
	"github.com/iov-one/lockbox/x"
)

// EventCollectorChanged is emitted when a collector is reassigned.
const EventCollectorChanged = "feemgr.collector.changed"

// RegisterRoutes registers the reassignment handler.
func RegisterRoutes(r lockbox.Registry, auth x.Authenticator, reg Registry) {
	r.Handle(&ReassignMsg{}, &ReassignHandler{auth: auth, registry: reg})
}

// RegisterQuery exposes the configuration as "feemgr/conf". The key is
// ignored.
func RegisterQuery(qr lockbox.QueryRouter, reg Registry) {
	qr.Register("feemgr/conf", lockbox.QueryHandlerFunc(func(db lockbox.ReadOnlyKVStore, key []byte) (interface{}, error) {
		return reg.Config(db)
	}))
}

// ReassignHandler processes ReassignMsg. Only the manager can reassign a
// collector.
type ReassignHandler struct {
	auth     x.Authenticator
	registry Registry
}

var _ lockbox.Handler = (*ReassignHandler)(nil)

func (h *ReassignHandler) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{}, nil
}

func (h *ReassignHandler) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	old, moved, err := h.registry.Reassign(db, msg.Role, msg.Collector)
	if err != nil {
		return nil, err
	}
	if old.Equals(msg.Collector) {
		return &lockbox.DeliverResult{Log: "collector unchanged"}, nil
	}
	return &lockbox.DeliverResult{
		Events: []lockbox.Event{{
			Kind: EventCollectorChanged,
			Key:  msg.Collector,
			Attributes: map[string]string{
				"role":  string(msg.Role),
				"old":   old.String(),
				"new":   msg.Collector.String(),
				"moved": moved.String(),
			},
		}},
	}, nil
}

func (h *ReassignHandler) validate(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*ReassignMsg, error) {
	var msg ReassignMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := h.registry.Config(db)
	if err != nil {
		return nil, err
	}
	if err := x.RequireSigner(ctx, h.auth, conf.Manager, "manager"); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Initializer loads the configuration from the genesis file.
type Initializer struct{}

var _ lockbox.Initializer = Initializer{}

func (Initializer) FromGenesis(opts lockbox.Options, db lockbox.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, ConfigPkg, &conf)
}
