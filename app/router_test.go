package app

import (
	"context"
	"testing"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/lockboxtest"
	"github.com/iov-one/lockbox/lockboxtest/assert"
	"github.com/iov-one/lockbox/store"
)

// pingMsg is a message with a JSON representation.
type pingMsg struct {
	Note string `json:"note"`
}

func (*pingMsg) Path() string { return "test/ping" }

func (m *pingMsg) Validate() error {
	if m.Note == "" {
		return errors.Wrap(errors.ErrEmpty, "note")
	}
	return nil
}

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()
	ping := &lockboxtest.Handler{}
	other := &lockboxtest.Handler{}
	r.Handle(&pingMsg{}, ping)
	r.Handle(&lockboxtest.Msg{RoutePath: "test/other"}, other)

	ctx := context.Background()
	db := store.MemStore()

	_, err := r.Deliver(ctx, db, &lockboxtest.Tx{Msg: &pingMsg{Note: "x"}})
	assert.Nil(t, err)
	_, err = r.Check(ctx, db, &lockboxtest.Tx{Msg: &lockboxtest.Msg{RoutePath: "test/other"}})
	assert.Nil(t, err)
	assert.Equal(t, 1, ping.DeliverCallCount())
	assert.Equal(t, 1, other.CheckCallCount())

	_, err = r.Deliver(ctx, db, &lockboxtest.Tx{Msg: &lockboxtest.Msg{RoutePath: "test/missing"}})
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Check(ctx, db, &lockboxtest.Tx{})
	assert.IsErr(t, errors.ErrMsg, err)
	_, err = r.Deliver(ctx, db, &lockboxtest.Tx{Err: errors.ErrInput})
	assert.IsErr(t, errors.ErrInput, err)

	assert.Equal(t, []string{"test/other", "test/ping"}, r.Paths())
}

func TestRouterRejectsInvalidRegistration(t *testing.T) {
	r := NewRouter()
	r.Handle(&pingMsg{}, &lockboxtest.Handler{})

	assert.Panics(t, func() { r.Handle(&pingMsg{}, &lockboxtest.Handler{}) })
	assert.Panics(t, func() { r.Handle(&lockboxtest.Msg{RoutePath: "Bad Path"}, &lockboxtest.Handler{}) })
	assert.Panics(t, func() { r.Handle(&lockboxtest.Msg{RoutePath: "trailing/"}, &lockboxtest.Handler{}) })
}

func TestRouterDecodeMsg(t *testing.T) {
	r := NewRouter()
	r.Handle(&pingMsg{}, &lockboxtest.Handler{})

	msg, err := r.DecodeMsg("test/ping", []byte(`{"note": "hello"}`))
	assert.Nil(t, err)
	assert.Equal(t, &pingMsg{Note: "hello"}, msg)

	var _ lockbox.Msg = msg

	_, err = r.DecodeMsg("test/ping", []byte(`{"note": 1}`))
	assert.IsErr(t, errors.ErrMsg, err)
	_, err = r.DecodeMsg("test/unknown", nil)
	assert.IsErr(t, errors.ErrNotFound, err)
}
