package sigs

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// SignedTx is a transaction that carries the addresses of its signers.
type SignedTx interface {
	lockbox.Tx
	GetSigners() []lockbox.Address
}

// Decorator validates the signers of the transaction and adds them to the
// context.
type Decorator struct {
	allowMissingSigs bool
}

var _ lockbox.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator, which requires
// at least one signer to be present.
func NewDecorator() Decorator {
	return Decorator{
		allowMissingSigs: false,
	}
}

// AllowMissingSigs allows us to pass along items with no signatures
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// Check verifies signers before calling down the stack.
func (d Decorator) Check(ctx lockbox.Context, store lockbox.KVStore, tx lockbox.Tx, next lockbox.Checker) (*lockbox.CheckResult, error) {
	ctx, err := d.withTxSigners(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver verifies signers before calling down the stack.
func (d Decorator) Deliver(ctx lockbox.Context, store lockbox.KVStore, tx lockbox.Tx, next lockbox.Deliverer) (*lockbox.DeliverResult, error) {
	ctx, err := d.withTxSigners(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) withTxSigners(ctx lockbox.Context, tx lockbox.Tx) (lockbox.Context, error) {
	var signers []lockbox.Address
	if stx, ok := tx.(SignedTx); ok {
		signers = stx.GetSigners()
	}
	for i, s := range signers {
		if err := s.Validate(); err != nil {
			return nil, errors.Wrapf(err, "signer %d", i)
		}
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), nil
}
