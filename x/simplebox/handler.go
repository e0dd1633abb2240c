package simplebox

import (
	"strconv"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/gconf"
	"github.com/iov-one/lockbox/x"
	"github.com/iov-one/lockbox/x/cash"
	"github.com/iov-one/lockbox/x/escrow"
)

const (
	EventDepositOpened  = "simplebox.deposit.opened"
	EventDepositClosed  = "simplebox.deposit.closed"
	EventWithdrawOpened = "simplebox.withdraw.opened"
	EventWithdrawClosed = "simplebox.withdraw.closed"
)

// FeeAccruer credits settlement fees to the fee collectors.
type FeeAccruer interface {
	Accrue(db lockbox.KVStore, swapFee, txFee coin.Coin) error
}

// SolvencyChecker returns an error if custody cannot cover a payout.
type SolvencyChecker interface {
	EnsureSolvent(db lockbox.ReadOnlyKVStore, amount coin.Coin) error
}

// RegisterRoutes registers the handlers of both box directions.
func RegisterRoutes(r lockbox.Registry, auth x.Authenticator, vault cash.Custodian, solvency SolvencyChecker, fees FeeAccruer) {
	deposits := NewDepositStore()
	withdraws := NewWithdrawStore()
	r.Handle(&OpenDepositMsg{}, &OpenDepositHandler{auth: auth, boxes: deposits, vault: vault})
	r.Handle(&CloseDepositMsg{}, &CloseDepositHandler{auth: auth, boxes: deposits, fees: fees})
	r.Handle(&OpenWithdrawMsg{}, &OpenWithdrawHandler{auth: auth, boxes: withdraws, solvency: solvency})
	r.Handle(&CloseWithdrawMsg{}, &CloseWithdrawHandler{
		auth:     auth,
		boxes:    withdraws,
		vault:    vault,
		solvency: solvency,
		fees:     fees,
	})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(ConfigPkg, &Configuration{}, auth))
}

// RegisterQuery exposes boxes as "simplebox/deposit" and
// "simplebox/withdraw", keyed by the box key. A key that was never used
// returns an empty box in the INVALID state.
func RegisterQuery(qr lockbox.QueryRouter) {
	qr.Register("simplebox/deposit", boxQuery(NewDepositStore()))
	qr.Register("simplebox/withdraw", boxQuery(NewWithdrawStore()))
}

func boxQuery(boxes escrow.Store) lockbox.QueryHandler {
	return lockbox.QueryHandlerFunc(func(db lockbox.ReadOnlyKVStore, key []byte) (interface{}, error) {
		k := escrow.Key(key)
		if err := k.Validate(); err != nil {
			return nil, err
		}
		var box LockBox
		switch err := boxes.Load(db, k, &box); {
		case errors.ErrNotFound.Is(err):
			return &LockBox{Header: &escrow.Header{Key: k}}, nil
		case err != nil:
			return nil, err
		}
		return &box, nil
	})
}

// OpenDepositHandler locks native coins of the trader in a new box.
type OpenDepositHandler struct {
	auth  x.Authenticator
	boxes escrow.Store
	vault cash.Custodian
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
	if err := h.vault.Receive(db, msg.Trader, *msg.Amount); err != nil {
		return nil, err
	}
	box := &LockBox{
		Header: &escrow.Header{
			Key:       msg.BoxKey,
			Trader:    msg.Trader,
			Principal: msg.Amount,
			State:     escrow.Open,
			CreatedAt: now,
		},
		WithdrawAmount: &coin.Coin{Ticker: conf.NativeTicker},
		SwapFee:        msg.SwapFee,
		TxFee:          msg.TxFee,
	}
	if err := h.boxes.Create(db, box); err != nil {
		return nil, errors.Wrap(err, "create box")
	}
	return &lockbox.DeliverResult{
		Data: msg.BoxKey,
		Events: []lockbox.Event{{
			Kind: EventDepositOpened,
			Key:  msg.BoxKey,
			Attributes: map[string]string{
				"key":    msg.BoxKey.String(),
				"caller": msg.Trader.String(),
				"amount": msg.Amount.String(),
			},
		}},
	}, nil
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
	if msg.Amount.Ticker != conf.NativeTicker {
		return nil, nil, errors.Wrapf(errors.ErrInput, "deposit must be %s", conf.NativeTicker)
	}
	msg.SwapFee = feeIn(msg.SwapFee, conf.NativeTicker)
	msg.TxFee = feeIn(msg.TxFee, conf.NativeTicker)
	if _, err := netPayout(*msg.Amount, *msg.SwapFee, *msg.TxFee); err != nil {
		return nil, nil, err
	}
	if err := h.boxes.RequireUnused(db, msg.BoxKey); err != nil {
		return nil, nil, err
	}
	return &msg, conf, nil
}

// CloseDepositHandler settles a deposit box. The deposit stays in custody
// and only the fees are credited to the collectors.
type CloseDepositHandler struct {
	auth  x.Authenticator
	boxes escrow.Store
	fees  FeeAccruer
}

var _ lockbox.Handler = (*CloseDepositHandler)(nil)

func (h *CloseDepositHandler) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{}, nil
}

func (h *CloseDepositHandler) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	box, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.fees.Accrue(db, *box.SwapFee, *box.TxFee); err != nil {
		return nil, errors.Wrap(err, "accrue fees")
	}
	if err := h.boxes.Finish(db, box, escrow.Closed); err != nil {
		return nil, err
	}
	return &lockbox.DeliverResult{
		Events: []lockbox.Event{{
			Kind: EventDepositClosed,
			Key:  box.Header.Key,
			Attributes: map[string]string{
				"key":    box.Header.Key.String(),
				"amount": box.Header.Principal.String(),
			},
		}},
	}, nil
}

func (h *CloseDepositHandler) validate(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*LockBox, error) {
	var msg CloseDepositMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	var box LockBox
	if err := h.boxes.Load(db, msg.BoxKey, &box); err != nil {
		return nil, err
	}
	policy := escrow.ManagerAuthorized{Auth: h.auth, Manager: conf.Manager}
	if err := policy.CanClose(ctx, box.Header, escrow.Evidence{}); err != nil {
		return nil, err
	}
	return &box, nil
}

// OpenWithdrawHandler creates a box promising a net native payout for
// points. Nothing is paid until the box is closed.
type OpenWithdrawHandler struct {
	auth     x.Authenticator
	boxes    escrow.Store
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
	msg, net, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := escrow.Now(ctx)
	if err != nil {
		return nil, err
	}
	box := &LockBox{
		Header: &escrow.Header{
			Key:       msg.BoxKey,
			Trader:    msg.Beneficiary,
			Principal: msg.Points,
			State:     escrow.Open,
			CreatedAt: now,
		},
		WithdrawAmount: &net,
		SwapFee:        msg.SwapFee,
		TxFee:          msg.TxFee,
	}
	if err := h.boxes.Create(db, box); err != nil {
		return nil, errors.Wrap(err, "create box")
	}
	return &lockbox.DeliverResult{
		Data: msg.BoxKey,
		Events: []lockbox.Event{{
			Kind: EventWithdrawOpened,
			Key:  msg.BoxKey,
			Attributes: map[string]string{
				"key":         msg.BoxKey.String(),
				"beneficiary": msg.Beneficiary.String(),
				"points":      msg.Points.String(),
				"amount":      net.String(),
			},
		}},
	}, nil
}

func (h *OpenWithdrawHandler) validate(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*OpenWithdrawMsg, coin.Coin, error) {
	var msg OpenWithdrawMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, coin.Coin{}, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, coin.Coin{}, err
	}
	if err := x.RequireSigner(ctx, h.auth, conf.Manager, "manager"); err != nil {
		return nil, coin.Coin{}, err
	}
	converted, err := conf.Convert(*msg.Points, msg.Price)
	if err != nil {
		return nil, coin.Coin{}, err
	}
	msg.SwapFee = feeIn(msg.SwapFee, conf.NativeTicker)
	msg.TxFee = feeIn(msg.TxFee, conf.NativeTicker)
	net, err := netPayout(converted, *msg.SwapFee, *msg.TxFee)
	if err != nil {
		return nil, coin.Coin{}, err
	}
	if err := h.solvency.EnsureSolvent(db, net); err != nil {
		return nil, coin.Coin{}, err
	}
	if err := h.boxes.RequireUnused(db, msg.BoxKey); err != nil {
		return nil, coin.Coin{}, err
	}
	return &msg, net, nil
}

// CloseWithdrawHandler settles a withdraw box. The payout is recomputed
// using the price given at close time.
type CloseWithdrawHandler struct {
	auth     x.Authenticator
	boxes    escrow.Store
	vault    cash.Custodian
	solvency SolvencyChecker
	fees     FeeAccruer
}

var _ lockbox.Handler = (*CloseWithdrawHandler)(nil)

func (h *CloseWithdrawHandler) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{}, nil
}

func (h *CloseWithdrawHandler) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	msg, box, net, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.vault.TransferOut(db, box.Header.Trader, net); err != nil {
		return nil, err
	}
	if err := h.fees.Accrue(db, *box.SwapFee, *box.TxFee); err != nil {
		return nil, errors.Wrap(err, "accrue fees")
	}
	box.WithdrawAmount = &net
	if err := h.boxes.Finish(db, box, escrow.Closed); err != nil {
		return nil, err
	}
	return &lockbox.DeliverResult{
		Events: []lockbox.Event{{
			Kind: EventWithdrawClosed,
			Key:  box.Header.Key,
			Attributes: map[string]string{
				"key":         box.Header.Key.String(),
				"beneficiary": box.Header.Trader.String(),
				"amount":      net.String(),
				"price":       strconv.FormatUint(msg.Price, 10),
			},
		}},
	}, nil
}

func (h *CloseWithdrawHandler) validate(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*CloseWithdrawMsg, *LockBox, coin.Coin, error) {
	var msg CloseWithdrawMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, nil, coin.Coin{}, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, coin.Coin{}, err
	}
	var box LockBox
	if err := h.boxes.Load(db, msg.BoxKey, &box); err != nil {
		return nil, nil, coin.Coin{}, err
	}
	policy := escrow.ManagerAuthorized{Auth: h.auth, Manager: conf.Manager}
	if err := policy.CanClose(ctx, box.Header, escrow.Evidence{}); err != nil {
		return nil, nil, coin.Coin{}, err
	}
	converted, err := conf.Convert(*box.Header.Principal, msg.Price)
	if err != nil {
		return nil, nil, coin.Coin{}, err
	}
	net, err := netPayout(converted, *box.SwapFee, *box.TxFee)
	if err != nil {
		return nil, nil, coin.Coin{}, err
	}
	if err := h.solvency.EnsureSolvent(db, net); err != nil {
		return nil, nil, coin.Coin{}, err
	}
	return &msg, &box, net, nil
}

// Initializer loads the configuration from the genesis file.
type Initializer struct{}

var _ lockbox.Initializer = Initializer{}

func (Initializer) FromGenesis(opts lockbox.Options, db lockbox.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, ConfigPkg, &conf)
}
