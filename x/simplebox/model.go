package simplebox

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/gconf"
	"github.com/iov-one/lockbox/x/escrow"
)

// ConfigPkg is the gconf key of the Configuration.
const ConfigPkg = "simplebox"

func (m *LockBox) GetHeader() *escrow.Header {
	return m.Header
}

func (m *LockBox) Validate() error {
	if err := m.Header.Validate(); err != nil {
		return errors.Wrap(err, "header")
	}
	if err := validateFee(m.SwapFee); err != nil {
		return errors.Wrap(err, "swap fee")
	}
	if err := validateFee(m.TxFee); err != nil {
		return errors.Wrap(err, "tx fee")
	}
	if m.WithdrawAmount != nil {
		if !m.WithdrawAmount.IsNonNegative() {
			return errors.Wrap(errors.ErrAmount, "negative withdraw amount")
		}
	}
	return nil
}

// NewDepositStore returns the store of deposit boxes.
func NewDepositStore() escrow.Store {
	return escrow.NewStore("sb_dep", &LockBox{})
}

// NewWithdrawStore returns the store of withdraw boxes.
func NewWithdrawStore() escrow.Store {
	return escrow.NewStore("sb_wd", &LockBox{})
}

func validateFee(c *coin.Coin) error {
	if isNoFee(c) {
		return nil
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if !c.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative")
	}
	return nil
}

func (c *Configuration) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := c.Manager.Validate(); err != nil {
		return errors.Wrap(err, "manager")
	}
	if !coin.IsCC(c.NativeTicker) {
		return errors.Wrapf(errors.ErrInput, "native ticker %q", c.NativeTicker)
	}
	if !coin.IsCC(c.PointTicker) {
		return errors.Wrapf(errors.ErrInput, "point ticker %q", c.PointTicker)
	}
	if c.NativeTicker == c.PointTicker {
		return errors.Wrap(errors.ErrInput, "native and point tickers must differ")
	}
	if c.Unit == 0 {
		return errors.Wrap(errors.ErrInput, "unit must not be zero")
	}
	return nil
}

func (c *Configuration) GetOwner() lockbox.Address {
	return c.Owner
}

// Convert returns the native value of points at given price, that is
// points * unit / price rounded down to the smallest native unit.
func (c *Configuration) Convert(points coin.Coin, price uint64) (coin.Coin, error) {
	if price == 0 {
		return coin.Coin{}, errors.Wrap(errors.ErrInput, "price must not be zero")
	}
	if points.Ticker != c.PointTicker {
		return coin.Coin{}, errors.Wrapf(errors.ErrInput, "points must be %s, got %s", c.PointTicker, points.Ticker)
	}
	units, err := points.Units()
	if err != nil {
		return coin.Coin{}, err
	}
	converted, overflow := new(uint256.Int).MulDivOverflow(units, uint256.NewInt(c.Unit), uint256.NewInt(price))
	if overflow {
		return coin.Coin{}, errors.Wrapf(errors.ErrOverflow, "%s at price %d", points, price)
	}
	return coin.FromUnits(converted, c.NativeTicker)
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, ConfigPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "simplebox configuration")
	}
	return &conf, nil
}

// isNoFee returns true for a missing fee and for a zero fee without a
// ticker.
func isNoFee(c *coin.Coin) bool {
	return c == nil || (c.Ticker == "" && c.IsZero())
}

// feeIn returns the fee, a missing or ticker-less zero fee becomes a zero
// coin of given ticker.
func feeIn(c *coin.Coin, ticker string) *coin.Coin {
	if isNoFee(c) {
		return &coin.Coin{Ticker: ticker}
	}
	return c
}

// netPayout returns the converted amount reduced by the fees. Fees must be
// strictly lower than the converted amount.
func netPayout(converted, swapFee, txFee coin.Coin) (coin.Coin, error) {
	swapFee = *feeIn(&swapFee, converted.Ticker)
	txFee = *feeIn(&txFee, converted.Ticker)
	fees, err := swapFee.Add(txFee)
	if err != nil {
		return coin.Coin{}, errors.Wrap(err, "fees")
	}
	if !fees.SameType(converted) {
		return coin.Coin{}, errors.Wrapf(errors.ErrInput, "fees must be %s, got %s", converted.Ticker, fees.Ticker)
	}
	if fees.Compare(converted) >= 0 {
		return coin.Coin{}, errors.Wrapf(errors.ErrAmount, "fees %s not lower than %s", fees, converted)
	}
	return converted.Subtract(fees)
}
