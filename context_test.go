package lockbox

import (
	"context"
	"io/ioutil"
	"testing"
	"time"

	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	// chain id is empty until set
	if got := GetChainID(bg); got != "" {
		t.Fatalf("unexpected chain id: %q", got)
	}
	ctx := WithChainID(bg, "lockbox-test")
	if got := GetChainID(ctx); got != "lockbox-test" {
		t.Fatalf("unexpected chain id: %q", got)
	}
	assertPanics(t, func() { WithChainID(ctx, "another-chain") })
	assertPanics(t, func() { WithChainID(bg, "x") })

	now := time.Unix(1554370540, 0)
	ctx = WithBlockTime(ctx, now)
	if got, ok := BlockTime(ctx); !ok || !got.Equal(now) {
		t.Fatalf("unexpected block time: %v", got)
	}
	assertPanics(t, func() { WithBlockTime(ctx, now) })
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	if GetLogger(ctx) != DefaultLogger {
		t.Fatal("default logger expected")
	}

	logger := log.NewTMLogger(log.NewSyncWriter(ioutil.Discard))
	ctx = WithLogger(ctx, logger)
	if GetLogger(ctx) != logger {
		t.Fatal("configured logger expected")
	}

	ctx = WithLogInfo(ctx, "module", "test")
	if GetLogger(ctx) == logger {
		t.Fatal("extended logger expected")
	}
}

func assertPanics(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}
