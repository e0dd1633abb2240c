package currency

import (
	"testing"
	"time"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/lockboxtest"
	"github.com/iov-one/lockbox/lockboxtest/assert"
	"github.com/iov-one/lockbox/store"
)

func TestCreateTokenInfoHandler(t *testing.T) {
	issuer := lockboxtest.NewAddress()

	cases := map[string]struct {
		issuer  lockbox.Address
		signer  lockbox.Address
		preset  []string
		msg     lockbox.Msg
		wantErr *errors.Error
	}{
		"anyone can register without an issuer": {
			signer: lockboxtest.NewAddress(),
			msg:    &CreateMsg{Ticker: "ETH", Name: "Ether", SigFigs: 9},
		},
		"issuer registers": {
			issuer: issuer,
			signer: issuer,
			msg:    &CreateMsg{Ticker: "ETH", Name: "Ether"},
		},
		"not the issuer": {
			issuer:  issuer,
			signer:  lockboxtest.NewAddress(),
			msg:     &CreateMsg{Ticker: "ETH", Name: "Ether"},
			wantErr: errors.ErrUnauthorized,
		},
		"duplicate": {
			signer:  issuer,
			preset:  []string{"ETH"},
			msg:     &CreateMsg{Ticker: "ETH", Name: "Ether"},
			wantErr: errors.ErrDuplicate,
		},
		"invalid ticker": {
			signer:  issuer,
			msg:     &CreateMsg{Ticker: "eth", Name: "Ether"},
			wantErr: errors.ErrInput,
		},
		"invalid name": {
			signer:  issuer,
			msg:     &CreateMsg{Ticker: "ETH", Name: "E"},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			b := NewTokenInfoBucket()
			for _, ticker := range tc.preset {
				assert.Nil(t, b.Register(db, ticker, &TokenInfo{Name: "Preset"}))
			}

			h := newCreateTokenInfoHandler(&lockboxtest.Auth{Signer: tc.signer}, tc.issuer)
			ctx := lockboxtest.Context(time.Now())
			tx := &lockboxtest.Tx{Msg: tc.msg}

			if _, err := h.Check(ctx, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			res, err := h.Deliver(ctx, db, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, "currency.created", res.Events[0].Kind)
			assert.Nil(t, b.IsRegistered(db, "ETH"))
			info, err := b.Get(db, "ETH")
			assert.Nil(t, err)
			assert.Equal(t, "Ether", info.Name)
		})
	}
}

func TestIsRegistered(t *testing.T) {
	db := store.MemStore()
	b := NewTokenInfoBucket()
	assert.IsErr(t, errors.ErrNotFound, b.IsRegistered(db, "BTC"))

	var init Initializer
	opts := lockbox.Options{"currencies": []byte(`[{"ticker": "BTC", "name": "Bitcoin", "sig_figs": 8}]`)}
	assert.Nil(t, init.FromGenesis(opts, db))
	assert.Nil(t, b.IsRegistered(db, "BTC"))

	// Genesis cannot register the same asset twice.
	assert.IsErr(t, errors.ErrDuplicate, init.FromGenesis(opts, db))

	qr := lockbox.NewQueryRouter()
	RegisterQuery(qr)
	res, err := qr.Handler("currency/tokens").Query(db, []byte("BTC"))
	assert.Nil(t, err)
	assert.Equal(t, int32(8), res.(*TokenInfo).SigFigs)
}
