package app

import (
	"context"
	"testing"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/lockboxtest"
	"github.com/iov-one/lockbox/store"
	"github.com/iov-one/lockbox/x/utils"
	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	c1 := &lockboxtest.Decorator{}
	c2 := &lockboxtest.Decorator{}
	c3 := &lockboxtest.Decorator{}
	var nilDecorator *lockboxtest.Decorator
	h := &lockboxtest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		nilDecorator,
		utils.NewRecovery(),
		c2,
	).Chain(c3).WithHandler(h)

	ctx := context.Background()
	db := store.MemStore()

	_, err := stack.Check(ctx, db, nil)
	assert.NoError(t, err)
	_, err = stack.Deliver(ctx, db, nil)
	assert.NoError(t, err)

	assert.Equal(t, 1, c1.CheckCallCount())
	assert.Equal(t, 1, c3.DeliverCallCount())
	assert.Equal(t, 2, h.CallCount())

	// a failing decorator stops the chain
	c2.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, db, nil)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 2, c1.DeliverCallCount())
	assert.Equal(t, 1, c3.DeliverCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestChainRecoversBelowRecovery(t *testing.T) {
	stack := ChainDecorators(utils.NewRecovery()).WithHandler(panicHandler{})
	_, err := stack.Deliver(context.Background(), store.MemStore(), nil)
	assert.True(t, errors.ErrPanic.Is(err))
}

func TestChainDoesNotShareBackingArray(t *testing.T) {
	base := ChainDecorators(&lockboxtest.Decorator{}, &lockboxtest.Decorator{})
	a := &lockboxtest.Decorator{}
	b := &lockboxtest.Decorator{}
	h := &lockboxtest.Handler{}

	sa := base.Chain(a).WithHandler(h)
	sb := base.Chain(b).WithHandler(h)
	var _ lockbox.Handler = sb

	_, err := sa.Deliver(context.Background(), store.MemStore(), nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, a.DeliverCallCount())
	assert.Equal(t, 0, b.DeliverCallCount())
}
