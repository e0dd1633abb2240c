package currency

import (
	"regexp"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/orm"
)

var isTokenName = regexp.MustCompile(`^[A-Za-z0-9 \-_:]{3,32}$`).MatchString

func (t *TokenInfo) Validate() error {
	if !isTokenName(t.Name) {
		return errors.Wrapf(errors.ErrInput, "invalid token name %q", t.Name)
	}
	if t.SigFigs < 0 || t.SigFigs > 9 {
		return errors.Wrapf(errors.ErrInput, "invalid significant figures %d", t.SigFigs)
	}
	return nil
}

// TokenInfoBucket stores TokenInfo instances, using ticker name (currency
// symbol) as the key.
type TokenInfoBucket struct {
	orm.ModelBucket
}

func NewTokenInfoBucket() TokenInfoBucket {
	return TokenInfoBucket{
		ModelBucket: orm.NewModelBucket("tokeninfo", &TokenInfo{}),
	}
}

// Register saves a new asset. A ticker can be registered only once.
func (b TokenInfoBucket) Register(db lockbox.KVStore, ticker string, t *TokenInfo) error {
	if !coin.IsCC(ticker) {
		return errors.Wrapf(errors.ErrInput, "invalid ticker %q", ticker)
	}
	switch err := b.Has(db, []byte(ticker)); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "ticker %s", ticker)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return b.Put(db, []byte(ticker), t)
}

// Get returns the information of a registered asset.
func (b TokenInfoBucket) Get(db lockbox.ReadOnlyKVStore, ticker string) (*TokenInfo, error) {
	var t TokenInfo
	if err := b.One(db, []byte(ticker), &t); err != nil {
		return nil, errors.Wrapf(err, "ticker %s", ticker)
	}
	return &t, nil
}

// IsRegistered returns nil if the asset is registered and ErrNotFound
// otherwise.
func (b TokenInfoBucket) IsRegistered(db lockbox.ReadOnlyKVStore, ticker string) error {
	if err := b.Has(db, []byte(ticker)); err != nil {
		return errors.Wrapf(err, "asset %q is not registered", ticker)
	}
	return nil
}
