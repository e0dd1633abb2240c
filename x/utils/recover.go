package utils

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// Recovery turns a panic of any handler below it into ErrPanic and logs it
// with the message path, so a single faulty settlement call fails alone
// instead of stopping the node.
type Recovery struct{}

var _ lockbox.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

func (r Recovery) Check(ctx lockbox.Context, store lockbox.KVStore, tx lockbox.Tx, next lockbox.Checker) (_ *lockbox.CheckResult, err error) {
	defer reportPanic(ctx, "check", tx, &err)
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

func (r Recovery) Deliver(ctx lockbox.Context, store lockbox.KVStore, tx lockbox.Tx, next lockbox.Deliverer) (_ *lockbox.DeliverResult, err error) {
	defer reportPanic(ctx, "deliver", tx, &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}

// reportPanic must run after errors.Recover.
func reportPanic(ctx lockbox.Context, call string, tx lockbox.Tx, err *error) {
	if *err == nil || !errors.ErrPanic.Is(*err) {
		return
	}
	lockbox.GetLogger(ctx).Error("handler panic",
		"call", call,
		"path", lockbox.GetPath(tx),
		"err", *err)
}
