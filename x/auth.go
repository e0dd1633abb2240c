package x

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of handlers,
// so we can plug in another authentication system.
type Authenticator interface {
	// GetAddresses reveals all addresses that authorized the processed
	// transaction.
	GetAddresses(lockbox.Context) []lockbox.Address
	// HasAddress checks if any signer matches this address.
	HasAddress(lockbox.Context, lockbox.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetAddresses combines all addresses from all Authenticators.
func (m MultiAuth) GetAddresses(ctx lockbox.Context) []lockbox.Address {
	var res []lockbox.Address
	for _, impl := range m.impls {
		for _, a := range impl.GetAddresses(ctx) {
			if !hasAddr(res, a) {
				res = append(res, a)
			}
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this.
func (m MultiAuth) HasAddress(ctx lockbox.Context, addr lockbox.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

func hasAddr(addrs []lockbox.Address, a lockbox.Address) bool {
	for _, x := range addrs {
		if x.Equals(a) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signer if any, otherwise nil.
func MainSigner(ctx lockbox.Context, auth Authenticator) lockbox.Address {
	signers := auth.GetAddresses(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// RequireSigner returns ErrUnauthorized unless given address signed the
// processed transaction. Role is used to describe the failure.
func RequireSigner(ctx lockbox.Context, auth Authenticator, addr lockbox.Address, role string) error {
	if len(addr) == 0 {
		return errors.Wrapf(errors.ErrUnauthorized, "no %s configured", role)
	}
	if !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s signature required", role)
	}
	return nil
}

// HasAllAddresses returns true if all elements in required are also in
// context.
func HasAllAddresses(ctx lockbox.Context, auth Authenticator, required []lockbox.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}
