package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/lockbox/errors"
)

// recorder implements Tester and records failures instead of stopping the
// test.
type recorder struct {
	failed bool
}

func (r *recorder) Helper()                       {}
func (r *recorder) Fatal(...interface{})          { r.failed = true }
func (r *recorder) Fatalf(string, ...interface{}) { r.failed = true }

func TestNil(t *testing.T) {
	cases := map[string]struct {
		value    interface{}
		wantFail bool
	}{
		"nil":               {value: nil},
		"nil error pointer": {value: (*errors.Error)(nil)},
		"nil slice":         {value: []byte(nil)},
		"error":             {value: fmt.Errorf("x"), wantFail: true},
		"number":            {value: 0, wantFail: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var r recorder
			Nil(&r, tc.value)
			if r.failed != tc.wantFail {
				t.Fatalf("want failure %v, got %v", tc.wantFail, r.failed)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	var r recorder
	Equal(&r, []int{1, 2}, []int{1, 2})
	if r.failed {
		t.Fatal("equal values must not fail")
	}
	Equal(&r, int64(1), 1)
	if !r.failed {
		t.Fatal("values of a different type are not equal")
	}
}

func TestIsErr(t *testing.T) {
	IsErr(t, errors.ErrState, errors.Wrap(errors.ErrState, "closed"))
	IsErr(t, nil, nil)
}
