package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/lockboxtest"
	"github.com/iov-one/lockbox/lockboxtest/assert"
	"github.com/iov-one/lockbox/store"
	"github.com/iov-one/lockbox/x"
)

func TestPauseDecorator(t *testing.T) {
	pauses := x.NewPauseSet("htlc")
	dec := x.NewPauseDecorator(pauses)
	db := store.MemStore()
	ctx := context.Background()

	paused := &lockboxtest.Tx{Msg: &lockboxtest.Msg{RoutePath: "htlc/close"}}
	running := &lockboxtest.Tx{Msg: &lockboxtest.Msg{RoutePath: "ledger/deposit"}}

	var h lockboxtest.Handler
	_, err := dec.Check(ctx, db, paused, &h)
	assert.IsErr(t, errors.ErrPaused, err)
	_, err = dec.Deliver(ctx, db, paused, &h)
	assert.IsErr(t, errors.ErrPaused, err)
	assert.Equal(t, 0, h.CallCount())

	_, err = dec.Deliver(ctx, db, running, &h)
	assert.Nil(t, err)
	assert.Equal(t, 1, h.DeliverCallCount())

	pauses.Resume("htlc")
	_, err = dec.Deliver(ctx, db, paused, &h)
	assert.Nil(t, err)

	pauses.Pause("ledger")
	_, err = dec.Check(ctx, db, running, &h)
	assert.IsErr(t, errors.ErrPaused, err)
}

func TestModuleName(t *testing.T) {
	assert.Equal(t, "simplebox", x.ModuleName("simplebox/deposit/open"))
	assert.Equal(t, "feemgr", x.ModuleName("feemgr"))
	assert.Equal(t, "", x.ModuleName(""))
}

func TestGuardWithoutView(t *testing.T) {
	assert.Nil(t, x.Guard(nil, "htlc"))
}
