package lockboxtest

import "github.com/iov-one/lockbox"

// Handler implements a mock of lockbox.Handler. Optionally the handler
// writes a key to the store, which allows testing of the transactional
// behaviour of the caller.
type Handler struct {
	checkCall   int
	CheckResult lockbox.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult lockbox.DeliverResult
	DeliverErr    error

	// WriteKey if set is written to the store on every deliver call,
	// before the DeliverErr is returned.
	WriteKey []byte
}

var _ lockbox.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	h.deliverCall++
	if h.WriteKey != nil {
		if err := db.Set(h.WriteKey, []byte{1}); err != nil {
			return nil, err
		}
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// Decorator implements a mock of lockbox.Decorator that counts its calls and
// optionally fails before calling the next handler.
type Decorator struct {
	checkCall   int
	CheckErr    error
	deliverCall int
	DeliverErr  error
}

var _ lockbox.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx, next lockbox.Checker) (*lockbox.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx, next lockbox.Deliverer) (*lockbox.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}
