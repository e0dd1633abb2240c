package cash

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r lockbox.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
	r.Handle(&ApproveMsg{}, NewApproveHandler(auth, control))
}

// RegisterQuery exposes wallets as "cash/wallets" and allowances as
// "cash/allowances". Allowance key is the owner address followed by the
// spender address.
func RegisterQuery(qr lockbox.QueryRouter, control Controller) {
	qr.Register("cash/wallets", lockbox.QueryHandlerFunc(func(db lockbox.ReadOnlyKVStore, key []byte) (interface{}, error) {
		addr := lockbox.Address(key)
		if err := addr.Validate(); err != nil {
			return nil, err
		}
		coins, err := control.Balance(db, addr)
		if err != nil {
			return nil, err
		}
		return &Wallet{Coins: coins}, nil
	}))
	allowances := NewAllowanceBucket()
	qr.Register("cash/allowances", lockbox.QueryHandlerFunc(func(db lockbox.ReadOnlyKVStore, key []byte) (interface{}, error) {
		var a Allowance
		if err := allowances.One(db, key, &a); err != nil && !errors.ErrNotFound.Is(err) {
			return nil, err
		}
		return &a, nil
	}))
}

// SendHandler will handle sending coins.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ lockbox.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg.
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed.
func (h SendHandler) Check(ctx lockbox.Context, store lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{}, nil
}

// Deliver moves the tokens from source to receiver if all preconditions
// are met.
func (h SendHandler) Deliver(ctx lockbox.Context, store lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(store, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &lockbox.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx lockbox.Context, tx lockbox.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Source, "account owner"); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ApproveHandler sets allowances.
type ApproveHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ lockbox.Handler = ApproveHandler{}

// NewApproveHandler creates a handler for ApproveMsg.
func NewApproveHandler(auth x.Authenticator, control Controller) ApproveHandler {
	return ApproveHandler{
		auth:    auth,
		control: control,
	}
}

func (h ApproveHandler) Check(ctx lockbox.Context, store lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{}, nil
}

func (h ApproveHandler) Deliver(ctx lockbox.Context, store lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Approve(store, msg.Owner, msg.Spender, *msg.Amount); err != nil {
		return nil, err
	}
	return &lockbox.DeliverResult{}, nil
}

func (h ApproveHandler) validate(ctx lockbox.Context, tx lockbox.Tx) (*ApproveMsg, error) {
	var msg ApproveMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Owner, "account owner"); err != nil {
		return nil, err
	}
	return &msg, nil
}
