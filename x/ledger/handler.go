package ledger

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/x"
	"github.com/iov-one/lockbox/x/cash"
)

const (
	EventLiquidityIncreased = "ledger.liquidity.increased"
	EventLiquidityDecreased = "ledger.liquidity.decreased"
)

// RegisterRoutes registers the liquidity handlers.
func RegisterRoutes(r lockbox.Registry, auth x.Authenticator, l Ledger, vault cash.Custodian) {
	r.Handle(&DepositMsg{}, &DepositHandler{auth: auth, ledger: l, vault: vault})
	r.Handle(&WithdrawMsg{}, &WithdrawHandler{auth: auth, ledger: l, vault: vault})
}

// RegisterQuery exposes ledger entries as "ledger/entries", keyed by the
// account address.
func RegisterQuery(qr lockbox.QueryRouter, l Ledger) {
	qr.Register("ledger/entries", lockbox.QueryHandlerFunc(func(db lockbox.ReadOnlyKVStore, key []byte) (interface{}, error) {
		addr := lockbox.Address(key)
		if err := addr.Validate(); err != nil {
			return nil, err
		}
		return l.Entry(db, addr)
	}))
}

// DepositHandler credits the provider with the liquidity moved into
// custody.
type DepositHandler struct {
	auth   x.Authenticator
	ledger Ledger
	vault  cash.Custodian
}

var _ lockbox.Handler = (*DepositHandler)(nil)

func (h *DepositHandler) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{}, nil
}

func (h *DepositHandler) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.vault.Receive(db, msg.Provider, *msg.Amount); err != nil {
		return nil, err
	}
	if err := h.ledger.Credit(db, msg.Provider, *msg.Amount); err != nil {
		return nil, errors.Wrap(err, "credit")
	}
	return &lockbox.DeliverResult{
		Events: []lockbox.Event{{
			Kind: EventLiquidityIncreased,
			Key:  msg.Provider,
			Attributes: map[string]string{
				"account": msg.Provider.String(),
				"amount":  msg.Amount.String(),
			},
		}},
	}, nil
}

func (h *DepositHandler) validate(ctx lockbox.Context, tx lockbox.Tx) (*DepositMsg, error) {
	var msg DepositMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Provider, "provider"); err != nil {
		return nil, err
	}
	return &msg, nil
}

// WithdrawHandler pays out liquidity owned by the provider.
type WithdrawHandler struct {
	auth   x.Authenticator
	ledger Ledger
	vault  cash.Custodian
}

var _ lockbox.Handler = (*WithdrawHandler)(nil)

func (h *WithdrawHandler) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{}, nil
}

func (h *WithdrawHandler) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	// Transfer first, so that a failed payout leaves the entry intact.
	if err := h.vault.TransferOut(db, msg.Provider, *msg.Amount); err != nil {
		return nil, err
	}
	if err := h.ledger.Debit(db, msg.Provider, *msg.Amount); err != nil {
		return nil, errors.Wrap(err, "debit")
	}
	return &lockbox.DeliverResult{
		Events: []lockbox.Event{{
			Kind: EventLiquidityDecreased,
			Key:  msg.Provider,
			Attributes: map[string]string{
				"account": msg.Provider.String(),
				"amount":  msg.Amount.String(),
			},
		}},
	}, nil
}

func (h *WithdrawHandler) validate(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*WithdrawMsg, error) {
	var msg WithdrawMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Provider, "provider"); err != nil {
		return nil, err
	}
	owned, err := h.ledger.Balance(db, msg.Provider, msg.Amount.Ticker)
	if err != nil {
		return nil, err
	}
	if !owned.IsGTE(*msg.Amount) {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "entry holds %s, need %s", owned, msg.Amount)
	}
	if err := h.ledger.EnsureSolvent(db, *msg.Amount); err != nil {
		return nil, err
	}
	return &msg, nil
}
