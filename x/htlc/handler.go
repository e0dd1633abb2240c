package htlc

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/gconf"
	"github.com/iov-one/lockbox/x"
	"github.com/iov-one/lockbox/x/cash"
	"github.com/iov-one/lockbox/x/escrow"
)

// EventKind returns the kind of the event emitted when a box of given
// direction changes its state, for example "htlc.deposit.expired".
func EventKind(d Direction, action string) string {
	return "htlc." + string(d) + "." + action
}

// AssetRegistry tells which assets can be locked.
type AssetRegistry interface {
	IsRegistered(db lockbox.ReadOnlyKVStore, ticker string) error
}

// SolvencyChecker returns an error if custody cannot cover a payout.
type SolvencyChecker interface {
	EnsureSolvent(db lockbox.ReadOnlyKVStore, amount coin.Coin) error
}

type stores map[Direction]escrow.Store

func newStores() stores {
	return stores{
		Deposit:  NewStore(Deposit),
		Withdraw: NewStore(Withdraw),
	}
}

// RegisterRoutes registers the handlers of both box directions.
func RegisterRoutes(r lockbox.Registry, auth x.Authenticator, vault cash.Custodian, assets AssetRegistry, solvency SolvencyChecker) {
	boxes := newStores()
	r.Handle(&OpenDepositMsg{}, &OpenDepositHandler{auth: auth, boxes: boxes[Deposit], vault: vault, assets: assets})
	r.Handle(&OpenWithdrawMsg{}, &OpenWithdrawHandler{auth: auth, boxes: boxes[Withdraw], assets: assets, solvency: solvency})
	r.Handle(&CloseMsg{}, &CloseHandler{boxes: boxes, vault: vault, solvency: solvency})
	r.Handle(&ExpireMsg{}, &ExpireHandler{boxes: boxes, vault: vault})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(ConfigPkg, &Configuration{}, auth))
}

// RegisterQuery exposes boxes as "htlc/deposit" and "htlc/withdraw" and
// their secrets as "htlc/deposit/secret" and "htlc/withdraw/secret". All are
// keyed by the box key.
func RegisterQuery(qr lockbox.QueryRouter) {
	for d, s := range newStores() {
		qr.Register("htlc/"+string(d), boxQuery(s))
		qr.Register("htlc/"+string(d)+"/secret", secretQuery(s))
	}
}

func boxQuery(boxes escrow.Store) lockbox.QueryHandler {
	return lockbox.QueryHandlerFunc(func(db lockbox.ReadOnlyKVStore, key []byte) (interface{}, error) {
		k := escrow.Key(key)
		if err := k.Validate(); err != nil {
			return nil, err
		}
		var box Box
		switch err := boxes.Load(db, k, &box); {
		case errors.ErrNotFound.Is(err):
			return &Box{Header: &escrow.Header{Key: k}}, nil
		case err != nil:
			return nil, err
		}
		return &box, nil
	})
}

// secretQuery reveals the secret of a closed box only.
func secretQuery(boxes escrow.Store) lockbox.QueryHandler {
	return lockbox.QueryHandlerFunc(func(db lockbox.ReadOnlyKVStore, key []byte) (interface{}, error) {
		var box Box
		if err := boxes.Load(db, escrow.Key(key), &box); err != nil {
			return nil, err
		}
		if box.Header.State != escrow.Closed {
			return nil, errors.Wrapf(errors.ErrState, "box is %s", box.Header.State)
		}
		return box.Secret, nil
	})
}

// OpenDepositHandler pulls the approved amount from the trader into a new
// box.
type OpenDepositHandler struct {
	auth   x.Authenticator
	boxes  escrow.Store
	vault  cash.Custodian
	assets AssetRegistry
}

var _ lockbox.Handler = (*OpenDepositHandler)(nil)

func (h *OpenDepositHandler) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{}, nil
}

func (h *OpenDepositHandler) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := escrow.Now(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.vault.TransferIn(db, msg.Trader, *msg.Amount); err != nil {
		return nil, err
	}
	box := newBox(msg.BoxKey, msg.Trader, msg.Withdrawer, msg.Amount, msg.SecretHash, now, conf, Deposit)
	if err := h.boxes.Create(db, box); err != nil {
		return nil, errors.Wrap(err, "create box")
	}
	return openedResult(box, Deposit), nil
}

func (h *OpenDepositHandler) validate(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*OpenDepositMsg, *Configuration, error) {
	var msg OpenDepositMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Trader, "trader"); err != nil {
		return nil, nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if err := h.assets.IsRegistered(db, msg.Amount.Ticker); err != nil {
		return nil, nil, errors.Wrapf(err, "asset %s", msg.Amount.Ticker)
	}
	allowance, err := h.vault.Allowance(db, msg.Trader, msg.Amount.Ticker)
	if err != nil {
		return nil, nil, errors.Wrap(err, "allowance")
	}
	if !allowance.IsGTE(*msg.Amount) {
		return nil, nil, errors.Wrapf(errors.ErrInsufficientAmount, "approved %s, need %s", allowance, msg.Amount)
	}
	if err := h.boxes.RequireUnused(db, msg.BoxKey); err != nil {
		return nil, nil, err
	}
	return &msg, conf, nil
}

// OpenWithdrawHandler creates a box promising the withdrawer an amount
// that is already held in custody.
type OpenWithdrawHandler struct {
	auth     x.Authenticator
	boxes    escrow.Store
	assets   AssetRegistry
	solvency SolvencyChecker
}

var _ lockbox.Handler = (*OpenWithdrawHandler)(nil)

func (h *OpenWithdrawHandler) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{}, nil
}

func (h *OpenWithdrawHandler) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := escrow.Now(ctx)
	if err != nil {
		return nil, err
	}
	box := newBox(msg.BoxKey, msg.Trader, msg.Withdrawer, msg.Amount, msg.SecretHash, now, conf, Withdraw)
	if err := h.boxes.Create(db, box); err != nil {
		return nil, errors.Wrap(err, "create box")
	}
	return openedResult(box, Withdraw), nil
}

func (h *OpenWithdrawHandler) validate(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*OpenWithdrawMsg, *Configuration, error) {
	var msg OpenWithdrawMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if err := x.RequireSigner(ctx, h.auth, conf.Manager, "manager"); err != nil {
		return nil, nil, err
	}
	if err := h.assets.IsRegistered(db, msg.Amount.Ticker); err != nil {
		return nil, nil, errors.Wrapf(err, "asset %s", msg.Amount.Ticker)
	}
	if err := h.solvency.EnsureSolvent(db, *msg.Amount); err != nil {
		return nil, nil, err
	}
	if err := h.boxes.RequireUnused(db, msg.BoxKey); err != nil {
		return nil, nil, err
	}
	return &msg, conf, nil
}

// CloseHandler settles a box with the revealed secret. Only withdraw boxes
// pay out, the deposit stays in custody.
type CloseHandler struct {
	boxes    stores
	vault    cash.Custodian
	solvency SolvencyChecker
}

var _ lockbox.Handler = (*CloseHandler)(nil)

func (h *CloseHandler) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{}, nil
}

func (h *CloseHandler) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	msg, box, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if msg.Direction == Withdraw {
		if err := h.vault.TransferOut(db, box.Withdrawer, *box.Header.Principal); err != nil {
			return nil, err
		}
	}
	box.Secret = msg.Secret
	if err := h.boxes[msg.Direction].Finish(db, box, escrow.Closed); err != nil {
		return nil, err
	}
	return &lockbox.DeliverResult{
		Events: []lockbox.Event{{
			Kind: EventKind(msg.Direction, "closed"),
			Key:  box.Header.Key,
			Attributes: map[string]string{
				"key":        box.Header.Key.String(),
				"secret":     box.Secret.String(),
				"withdrawer": box.Withdrawer.String(),
				"amount":     box.Header.Principal.String(),
			},
		}},
	}, nil
}

func (h *CloseHandler) validate(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*CloseMsg, *Box, error) {
	var msg CloseMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	var box Box
	if err := h.boxes[msg.Direction].Load(db, msg.BoxKey, &box); err != nil {
		return nil, nil, err
	}
	policy, err := box.Policy()
	if err != nil {
		return nil, nil, err
	}
	if err := policy.CanClose(ctx, box.Header, escrow.Evidence{Secret: msg.Secret}); err != nil {
		return nil, nil, err
	}
	if msg.Direction == Withdraw {
		if err := h.solvency.EnsureSolvent(db, *box.Header.Principal); err != nil {
			return nil, nil, err
		}
	}
	return &msg, &box, nil
}

// ExpireHandler expires a box whose time lock elapsed. Deposits are
// returned to the trader.
type ExpireHandler struct {
	boxes stores
	vault cash.Custodian
}

var _ lockbox.Handler = (*ExpireHandler)(nil)

func (h *ExpireHandler) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{}, nil
}

func (h *ExpireHandler) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	msg, box, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if msg.Direction == Deposit {
		if err := h.vault.TransferOut(db, box.Header.Trader, *box.Header.Principal); err != nil {
			return nil, err
		}
	}
	if err := h.boxes[msg.Direction].Finish(db, box, escrow.Expired); err != nil {
		return nil, err
	}
	return &lockbox.DeliverResult{
		Events: []lockbox.Event{{
			Kind: EventKind(msg.Direction, "expired"),
			Key:  box.Header.Key,
			Attributes: map[string]string{
				"key":    box.Header.Key.String(),
				"trader": box.Header.Trader.String(),
				"amount": box.Header.Principal.String(),
			},
		}},
	}, nil
}

func (h *ExpireHandler) validate(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*ExpireMsg, *Box, error) {
	var msg ExpireMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	var box Box
	if err := h.boxes[msg.Direction].Load(db, msg.BoxKey, &box); err != nil {
		return nil, nil, err
	}
	policy, err := box.Policy()
	if err != nil {
		return nil, nil, err
	}
	if err := policy.CanExpire(ctx, box.Header); err != nil {
		return nil, nil, err
	}
	return &msg, &box, nil
}

func newBox(key escrow.Key, trader, withdrawer lockbox.Address, amount *coin.Coin, secretHash HexBytes, now lockbox.UnixTime, conf *Configuration, d Direction) *Box {
	return &Box{
		Header: &escrow.Header{
			Key:       key,
			Trader:    trader,
			Principal: amount,
			State:     escrow.Open,
			CreatedAt: now,
		},
		TimeLock:      conf.TimeLock(d),
		Withdrawer:    withdrawer,
		SecretHash:    secretHash,
		HashAlgorithm: conf.HashAlgorithm,
	}
}

func openedResult(box *Box, d Direction) *lockbox.DeliverResult {
	return &lockbox.DeliverResult{
		Data: box.Header.Key,
		Events: []lockbox.Event{{
			Kind: EventKind(d, "opened"),
			Key:  box.Header.Key,
			Attributes: map[string]string{
				"key":        box.Header.Key.String(),
				"trader":     box.Header.Trader.String(),
				"withdrawer": box.Withdrawer.String(),
				"amount":     box.Header.Principal.String(),
				"deadline":   box.Header.CreatedAt.AddSeconds(box.TimeLock).String(),
			},
		}},
	}
}

// Initializer loads the configuration from the genesis file.
type Initializer struct{}

var _ lockbox.Initializer = Initializer{}

func (Initializer) FromGenesis(opts lockbox.Options, db lockbox.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, ConfigPkg, &conf)
}
