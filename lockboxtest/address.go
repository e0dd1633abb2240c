package lockboxtest

import (
	"sync/atomic"
	"testing"

	"github.com/iov-one/lockbox"
)

var seq uint64

// NewCondition returns a new unique condition. Each call returns a different
// value, so that addresses derived from it never collide within a test run.
func NewCondition() lockbox.Condition {
	n := atomic.AddUint64(&seq, 1)
	return lockbox.NewCondition("test", "seq", []byte{
		byte(n >> 56), byte(n >> 48), byte(n >> 40), byte(n >> 32),
		byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n),
	})
}

// NewAddress returns a new unique address.
func NewAddress() lockbox.Address {
	return NewCondition().Address()
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation. This function is a test helper that is using
// lockbox.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) lockbox.Address {
	t.Helper()

	addr, err := lockbox.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
