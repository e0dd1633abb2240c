package coin

import (
	"encoding/json"
	"testing"

	"github.com/holiman/uint256"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/lockboxtest/assert"
)

func TestCompareCoin(t *testing.T) {
	cases := map[string]struct {
		a       Coin
		b       Coin
		wantRes int
	}{
		"a greater than b": {
			a:       NewCoin(20, 1234, "ABC"),
			b:       NewCoin(19, 999999999, "ABC"),
			wantRes: 1,
		},
		"a smaller than b": {
			a:       NewCoin(0, -2, "FOO"),
			b:       NewCoin(0, 1, "FOO"),
			wantRes: -1,
		},
		"a greater than b and both negative": {
			a:       NewCoin(-4, -2456, "BAR"),
			b:       NewCoin(-4, -4567, "BAR"),
			wantRes: 1,
		},
		"zero value coins": {
			a:       Coin{},
			b:       Coin{},
			wantRes: 0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantRes, tc.a.Compare(tc.b))
		})
	}
}

func TestCoinNegative(t *testing.T) {
	a := NewCoin(456, 985, "ABC")

	n := a.Negative()

	assert.Equal(t, a.Ticker, n.Ticker)
	assert.Equal(t, a.Whole, -n.Whole)
	assert.Equal(t, a.Fractional, -n.Fractional)

	if nn := a.Negative().Negative(); !a.Equals(nn) {
		t.Fatal("double negation malformed the coin")
	}
}

func TestCoinSigns(t *testing.T) {
	cases := map[string]struct {
		c           Coin
		zero        bool
		positive    bool
		nonNegative bool
	}{
		"zero":              {c: NewCoin(0, 0, "FOO"), zero: true, nonNegative: true},
		"positive fraction": {c: NewCoin(0, 1, "FOO"), positive: true, nonNegative: true},
		"positive whole":    {c: NewCoin(3, 0, "FOO"), positive: true, nonNegative: true},
		"negative fraction": {c: NewCoin(0, -1, "FOO")},
		"negative whole":    {c: NewCoin(-2, -5, "FOO")},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.zero, tc.c.IsZero())
			assert.Equal(t, tc.positive, tc.c.IsPositive())
			assert.Equal(t, tc.nonNegative, tc.c.IsNonNegative())
		})
	}
}

func TestCoinValidation(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr *errors.Error
	}{
		"valid": {
			coin: NewCoin(1, 1, "DIN"),
		},
		"valid negative": {
			coin: NewCoin(-1, -1, "DIN"),
		},
		"invalid ticker": {
			coin:    NewCoin(1, 0, "din"),
			wantErr: errors.ErrInput,
		},
		"missing ticker": {
			coin:    NewCoin(1, 0, ""),
			wantErr: errors.ErrInput,
		},
		"whole out of range": {
			coin:    NewCoin(MaxInt+1, 0, "DIN"),
			wantErr: errors.ErrOverflow,
		},
		"fractional out of range": {
			coin:    NewCoin(1, FracUnit, "DIN"),
			wantErr: errors.ErrOverflow,
		},
		"mismatched signs": {
			coin:    NewCoin(1, -1, "DIN"),
			wantErr: errors.ErrState,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coin.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q error, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestAddCoin(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		want    Coin
		wantErr *errors.Error
	}{
		"plain sum": {
			a:    NewCoin(1, 20, "ABC"),
			b:    NewCoin(2, 30, "ABC"),
			want: NewCoin(3, 50, "ABC"),
		},
		"fractional carry": {
			a:    NewCoin(1, 777777777, "ABC"),
			b:    NewCoin(0, 333333333, "ABC"),
			want: NewCoin(2, 111111110, "ABC"),
		},
		"sign correction": {
			a:    NewCoin(5, 0, "ABC"),
			b:    NewCoin(0, -1, "ABC"),
			want: NewCoin(4, 999999999, "ABC"),
		},
		"zero without ticker is neutral": {
			a:    Coin{},
			b:    NewCoin(7, 0, "ABC"),
			want: NewCoin(7, 0, "ABC"),
		},
		"different tickers": {
			a:       NewCoin(1, 0, "ABC"),
			b:       NewCoin(1, 0, "XYZ"),
			wantErr: errors.ErrInput,
		},
		"overflow": {
			a:       NewCoin(MaxInt, 0, "ABC"),
			b:       NewCoin(1, 0, "ABC"),
			wantErr: errors.ErrOverflow,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("want %q error, got %+v", tc.wantErr, err)
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoinSubtract(t *testing.T) {
	got, err := NewCoin(10, 0, "ABC").Subtract(NewCoin(2, 500000000, "ABC"))
	assert.Nil(t, err)
	assert.Equal(t, NewCoin(7, 500000000, "ABC"), got)
}

func TestCoinGTE(t *testing.T) {
	cases := map[string]struct {
		a, b Coin
		want bool
	}{
		"equal":          {a: NewCoin(1, 5, "ABC"), b: NewCoin(1, 5, "ABC"), want: true},
		"greater whole":  {a: NewCoin(2, 0, "ABC"), b: NewCoin(1, 5, "ABC"), want: true},
		"smaller frac":   {a: NewCoin(1, 4, "ABC"), b: NewCoin(1, 5, "ABC"), want: false},
		"different type": {a: NewCoin(9, 0, "ABC"), b: NewCoin(1, 0, "XYZ"), want: false},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.IsGTE(tc.b))
		})
	}
}

func TestCoinUnits(t *testing.T) {
	c := NewCoin(12, 345, "ABC")
	units, err := c.Units()
	assert.Nil(t, err)
	assert.Equal(t, "12000000345", units.Dec())

	back, err := FromUnits(units, "ABC")
	assert.Nil(t, err)
	assert.Equal(t, c, back)

	if _, err := NewCoin(-1, 0, "ABC").Units(); !errors.ErrAmount.Is(err) {
		t.Fatalf("want amount error, got %+v", err)
	}

	huge := new(uint256.Int).Mul(uint256.NewInt(uint64(MaxInt)+1), uint256.NewInt(uint64(FracUnit)))
	if _, err := FromUnits(huge, "ABC"); !errors.ErrOverflow.Is(err) {
		t.Fatalf("want overflow error, got %+v", err)
	}
}

func TestCoinDeserialization(t *testing.T) {
	cases := map[string]struct {
		serialized string
		wantErr    bool
		wantCoin   Coin
	}{
		"old format": {
			serialized: `{"whole": 1, "fractional": 2, "ticker": "IOV"}`,
			wantCoin:   NewCoin(1, 2, "IOV"),
		},
		"human format": {
			serialized: `"4.000000021 IOV"`,
			wantCoin:   NewCoin(4, 21, "IOV"),
		},
		"human format, negative": {
			serialized: `"-3.5 IOV"`,
			wantCoin:   NewCoin(-3, -500000000, "IOV"),
		},
		"human format without fraction": {
			serialized: `"7IOV"`,
			wantCoin:   NewCoin(7, 0, "IOV"),
		},
		"human format, too precise": {
			serialized: `"1.0000000001 IOV"`,
			wantErr:    true,
		},
		"human format, invalid ticker": {
			serialized: `"1 iov"`,
			wantErr:    true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var c Coin
			err := json.Unmarshal([]byte(tc.serialized), &c)
			if tc.wantErr {
				if err == nil {
					t.Fatal("want error")
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.wantCoin, c)
		})
	}
}

func TestCoinString(t *testing.T) {
	cases := map[string]struct {
		coin Coin
		want string
	}{
		"whole":             {coin: NewCoin(1, 0, "DOGE"), want: "1 DOGE"},
		"fractional":        {coin: NewCoin(1, 500000000, "ETH"), want: "1.5 ETH"},
		"tiny":              {coin: NewCoin(0, 1, "BTC"), want: "0.000000001 BTC"},
		"negative fraction": {coin: NewCoin(0, -10, "BTC"), want: "-0.00000001 BTC"},
		"no ticker":         {coin: NewCoin(2, 0, ""), want: "2"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.coin.String())
		})
	}
}
