package lockboxtest

import (
	"context"
	"time"

	"github.com/iov-one/lockbox"
)

// ChainID is the chain id set by the Context helper.
const ChainID = "lockbox-test"

// Context returns a context prepared for processing a transaction at the
// given block time.
func Context(now time.Time) lockbox.Context {
	ctx := lockbox.WithChainID(context.Background(), ChainID)
	return lockbox.WithBlockTime(ctx, now)
}
