package currency

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/x"
)

// RegisterQuery exposes registered assets as "currency/tokens".
func RegisterQuery(qr lockbox.QueryRouter) {
	b := NewTokenInfoBucket()
	qr.Register("currency/tokens", lockbox.QueryHandlerFunc(func(db lockbox.ReadOnlyKVStore, key []byte) (interface{}, error) {
		return b.Get(db, string(key))
	}))
}

// RegisterRoutes registers the asset creation handler. When the issuer is
// set, only the issuer can register new assets.
func RegisterRoutes(r lockbox.Registry, auth x.Authenticator, issuer lockbox.Address) {
	r.Handle(&CreateMsg{}, newCreateTokenInfoHandler(auth, issuer))
}

func newCreateTokenInfoHandler(auth x.Authenticator, issuer lockbox.Address) lockbox.Handler {
	return &createTokenInfoHandler{
		auth:   auth,
		issuer: issuer,
		bucket: NewTokenInfoBucket(),
	}
}

type createTokenInfoHandler struct {
	auth   x.Authenticator
	bucket TokenInfoBucket
	issuer lockbox.Address
}

func (h *createTokenInfoHandler) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{}, nil
}

func (h *createTokenInfoHandler) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Register(db, msg.Ticker, &TokenInfo{Name: msg.Name, SigFigs: msg.SigFigs}); err != nil {
		return nil, err
	}
	return &lockbox.DeliverResult{
		Events: []lockbox.Event{{
			Kind:       "currency.created",
			Key:        []byte(msg.Ticker),
			Attributes: map[string]string{"name": msg.Name},
		}},
	}, nil
}

func (h *createTokenInfoHandler) validate(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Ensure we have permission if the issuer is provided.
	if h.issuer != nil && !h.auth.HasAddress(ctx, h.issuer) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "token only issued by %s", h.issuer)
	}

	// Token can be registered only once and must not be updated.
	switch err := h.bucket.Has(db, []byte(msg.Ticker)); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "ticker %s", msg.Ticker)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	return &msg, nil
}
