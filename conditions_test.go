package lockbox

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/iov-one/lockbox/errors"
)

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		cond    Condition
		wantExt string
		wantTyp string
		wantErr *errors.Error
	}{
		"custody condition without data": {
			cond:    NewCondition("ledger", "vault", nil),
			wantExt: "ledger",
			wantTyp: "vault",
		},
		"condition with binary data": {
			cond:    NewCondition("sigs", "ed25519", []byte{0x0a, 0x20}),
			wantExt: "sigs",
			wantTyp: "ed25519",
		},
		"extension too short": {
			cond:    Condition("ab/vault/"),
			wantErr: errors.ErrInput,
		},
		"missing type": {
			cond:    Condition("ledger"),
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, _, err := tc.cond.Parse()
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if ext != tc.wantExt || typ != tc.wantTyp {
				t.Fatalf("unexpected sections: %q %q", ext, typ)
			}
			if err := tc.cond.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected validation error: %+v", err)
			}
		})
	}
}

func TestConditionAddress(t *testing.T) {
	a := NewCondition("ledger", "vault", nil).Address()
	b := NewCondition("ledger", "vault", nil).Address()
	c := NewCondition("ledger", "vault", []byte{1}).Address()

	if err := a.Validate(); err != nil {
		t.Fatalf("invalid address: %s", err)
	}
	if !a.Equals(b) {
		t.Fatal("same condition must produce the same address")
	}
	if a.Equals(c) {
		t.Fatal("different conditions must produce different addresses")
	}
}

func TestParseAddress(t *testing.T) {
	addr := NewCondition("test", "addr", []byte("alice")).Address()
	b32, err := addr.Bech32String("lbx")
	if err != nil {
		t.Fatalf("cannot encode bech32: %s", err)
	}

	cases := map[string]struct {
		enc     string
		want    Address
		wantErr *errors.Error
	}{
		"hex without prefix": {
			enc:  hex.EncodeToString(addr),
			want: addr,
		},
		"hex with prefix": {
			enc:  "hex:" + hex.EncodeToString(addr),
			want: addr,
		},
		"bech32": {
			enc:  "bech32:" + b32,
			want: addr,
		},
		"condition": {
			enc:  "cond:test/addr/" + hex.EncodeToString([]byte("alice")),
			want: addr,
		},
		"empty value": {
			enc:  "",
			want: nil,
		},
		"wrong length": {
			enc:     "hex:0102",
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			enc:     "base64:AQID",
			wantErr: errors.ErrType,
		},
		"broken bech32": {
			enc:     "bech32:lbx1notvalid",
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAddress(tc.enc)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if !got.Equals(tc.want) {
				t.Fatalf("want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestAddressJSON(t *testing.T) {
	addr := NewCondition("test", "addr", []byte("bob")).Address()
	raw, err := json.Marshal(addr)
	if err != nil {
		t.Fatalf("cannot marshal: %s", err)
	}
	var got Address
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("cannot unmarshal: %s", err)
	}
	if !got.Equals(addr) {
		t.Fatalf("want %s, got %s", addr, got)
	}
}
