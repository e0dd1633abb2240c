package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/lockboxtest"
	"github.com/iov-one/lockbox/store"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestRecovery(t *testing.T) {
	var h panicHandler
	r := NewRecovery()

	var buf bytes.Buffer
	ctx := lockbox.WithLogger(context.Background(), log.NewTMLogger(log.NewSyncWriter(&buf)))
	s := store.MemStore()
	tx := &lockboxtest.Tx{Msg: &lockboxtest.Msg{RoutePath: "simplebox/deposit/close"}}

	// Panic handler panics. Test the test tool.
	assert.Panics(t, func() { _, _ = h.Check(ctx, s, tx) })
	assert.Panics(t, func() { _, _ = h.Deliver(ctx, s, tx) })

	// Recovery wrapped handler returns an error.
	_, err := r.Check(ctx, s, tx, h)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, buf.String(), "call=check")

	buf.Reset()
	_, err = r.Deliver(ctx, s, tx, h)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, buf.String(), "handler panic")
	assert.Contains(t, buf.String(), "path=simplebox/deposit/close")

	// Regular failures pass through untouched and are not reported.
	buf.Reset()
	failing := &lockboxtest.Handler{DeliverErr: errors.Wrap(errors.ErrState, "closed")}
	_, err = r.Deliver(ctx, s, tx, failing)
	assert.True(t, errors.ErrState.Is(err))
	assert.Empty(t, buf.String())
}

type panicHandler struct{}

var _ lockbox.Handler = panicHandler{}

func (p panicHandler) Check(ctx lockbox.Context, store lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	panic("check panic")
}

func (p panicHandler) Deliver(ctx lockbox.Context, store lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	panic("deliver panic")
}
