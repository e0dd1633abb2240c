package cash

import (
	"testing"

	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/lockboxtest"
	"github.com/iov-one/lockbox/lockboxtest/assert"
	"github.com/iov-one/lockbox/store"
)

func TestVault(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	vault := NewVault(ctrl)
	alice := lockboxtest.NewAddress()
	bob := lockboxtest.NewAddress()

	assert.Equal(t, CustodyCondition.Address(), vault.Address())
	assert.Nil(t, ctrl.IssueCoins(db, alice, coin.NewCoin(50, 0, "ETH")))

	assert.Nil(t, vault.Receive(db, alice, coin.NewCoin(10, 0, "ETH")))
	assertCustody(t, vault, db, coin.NewCoin(10, 0, "ETH"))

	// Pulling requires a prior approval.
	err := vault.TransferIn(db, alice, coin.NewCoin(5, 0, "ETH"))
	assert.IsErr(t, errors.ErrTransfer, err)
	assertCustody(t, vault, db, coin.NewCoin(10, 0, "ETH"))

	assert.Nil(t, ctrl.Approve(db, alice, vault.Address(), coin.NewCoin(5, 0, "ETH")))
	allowed, err := vault.Allowance(db, alice, "ETH")
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(5, 0, "ETH"), allowed)

	assert.Nil(t, vault.TransferIn(db, alice, coin.NewCoin(5, 0, "ETH")))
	assertCustody(t, vault, db, coin.NewCoin(15, 0, "ETH"))
	allowed, err = vault.Allowance(db, alice, "ETH")
	assert.Nil(t, err)
	assert.Equal(t, true, allowed.IsZero())

	assert.Nil(t, vault.TransferOut(db, bob, coin.NewCoin(15, 0, "ETH")))
	assertCustody(t, vault, db, coin.Coin{Ticker: "ETH"})
	assertBalance(t, ctrl, db, bob, coin.Coins{coin.NewCoinp(15, 0, "ETH")})

	err = vault.TransferOut(db, bob, coin.NewCoin(1, 0, "ETH"))
	assert.IsErr(t, errors.ErrTransfer, err)

	err = vault.Receive(db, alice, coin.NewCoin(100, 0, "ETH"))
	assert.IsErr(t, errors.ErrTransfer, err)
}

func assertCustody(t testing.TB, v Custodian, db store.ReadOnlyKVStore, want coin.Coin) {
	t.Helper()
	got, err := v.Custody(db, want.Ticker)
	if err != nil {
		t.Fatalf("cannot get custody: %s", err)
	}
	if !got.Equals(want) {
		t.Fatalf("want %s in custody, got %s", want, got)
	}
}
