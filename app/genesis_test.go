package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/store"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenesis(t *testing.T) {
	Convey("Given a genesis file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "genesis.json")

		Convey("A valid file is loaded", func() {
			content := `{"chain_id": "lockbox-dev", "app_state": {"currencies": [{"ticker": "ETH"}]}}`
			So(os.WriteFile(path, []byte(content), 0o600), ShouldBeNil)

			gen, err := LoadGenesis(path)
			So(err, ShouldBeNil)
			So(gen.ChainID, ShouldEqual, "lockbox-dev")
			So(gen.AppState, ShouldContainKey, "currencies")
		})

		Convey("An invalid chain id is rejected", func() {
			So(os.WriteFile(path, []byte(`{"chain_id": "bad"}`), 0o600), ShouldBeNil)
			_, err := LoadGenesis(path)
			So(errors.ErrInput.Is(err), ShouldBeTrue)
		})

		Convey("Malformed JSON is rejected", func() {
			So(os.WriteFile(path, []byte(`{"chain_id": `), 0o600), ShouldBeNil)
			_, err := LoadGenesis(path)
			So(errors.ErrInput.Is(err), ShouldBeTrue)
		})

		Convey("A missing file is reported", func() {
			_, err := LoadGenesis(filepath.Join(dir, "missing.json"))
			So(errors.ErrInput.Is(err), ShouldBeTrue)
		})
	})
}

func TestChainID(t *testing.T) {
	Convey("Given an empty store", t, func() {
		kv := store.MemStore()

		id, err := loadChainID(kv)
		So(err, ShouldBeNil)
		So(id, ShouldEqual, "")

		Convey("A chain id is saved only once", func() {
			So(saveChainID(kv, "lockbox-dev"), ShouldBeNil)
			id, err := loadChainID(kv)
			So(err, ShouldBeNil)
			So(id, ShouldEqual, "lockbox-dev")

			err = saveChainID(kv, "lockbox-two")
			So(errors.ErrState.Is(err), ShouldBeTrue)
		})

		Convey("An invalid chain id is not saved", func() {
			err := saveChainID(kv, "no")
			So(errors.ErrInput.Is(err), ShouldBeTrue)
		})
	})
}

func TestChainInitializers(t *testing.T) {
	Convey("Initializers run in order and stop at the first error", t, func() {
		var calls []string
		record := func(name string, err error) lockbox.Initializer {
			return initializerFunc(func(lockbox.Options, lockbox.KVStore) error {
				calls = append(calls, name)
				return err
			})
		}
		init := ChainInitializers(record("a", nil), record("b", errors.ErrInput), record("c", nil))
		err := init.FromGenesis(lockbox.Options{}, store.MemStore())
		So(errors.ErrInput.Is(err), ShouldBeTrue)
		So(calls, ShouldResemble, []string{"a", "b"})
	})
}
