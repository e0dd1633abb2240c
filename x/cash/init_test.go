package cash

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/lockboxtest"
	"github.com/iov-one/lockbox/store"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenesis(t *testing.T) {
	Convey("Test initializer", t, func() {
		alice := lockboxtest.NewAddress()
		genesis := fmt.Sprintf(`
		{
			"cash": [
				{"address": %q, "coins": ["10.5 LBX", {"whole": 3, "ticker": "ETH"}]}
			]
		}`, alice.String())

		var o lockbox.Options
		So(json.Unmarshal([]byte(genesis), &o), ShouldBeNil)

		db := store.MemStore()
		var init Initializer
		So(init.FromGenesis(o, db), ShouldBeNil)

		coins, err := NewController().Balance(db, alice)
		So(err, ShouldBeNil)

		Convey("Wallet is normalized", func() {
			So(len(coins), ShouldEqual, 2)
			So(coins[0].Equals(coin.NewCoin(3, 0, "ETH")), ShouldBeTrue)
			So(coins[1].Equals(coin.NewCoin(10, 500000000, "LBX")), ShouldBeTrue)
		})
	})

	Convey("Invalid address is rejected", t, func() {
		o := lockbox.Options{"cash": []byte(`[{"address": "", "coins": ["1 LBX"]}]`)}
		var init Initializer
		So(init.FromGenesis(o, store.MemStore()), ShouldNotBeNil)
	})

	Convey("Missing section is not an error", t, func() {
		var init Initializer
		So(init.FromGenesis(lockbox.Options{}, store.MemStore()), ShouldBeNil)
	})
}
