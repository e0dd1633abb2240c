package escrow

import (
	"bytes"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/x"
)

// Evidence is presented by the caller that settles a box.
type Evidence struct {
	Secret []byte
}

// Policy decides whether an open box may be closed or expired.
type Policy interface {
	// CanClose returns nil if the box can be closed with given evidence.
	CanClose(ctx lockbox.Context, h *Header, ev Evidence) error
	// CanExpire returns nil if the box can be expired now.
	CanExpire(ctx lockbox.Context, h *Header) error
}

// ManagerAuthorized lets the manager close a box. Such boxes never expire.
type ManagerAuthorized struct {
	Auth    x.Authenticator
	Manager lockbox.Address
}

var _ Policy = ManagerAuthorized{}

func (p ManagerAuthorized) CanClose(ctx lockbox.Context, h *Header, _ Evidence) error {
	if err := h.RequireOpen(); err != nil {
		return err
	}
	return x.RequireSigner(ctx, p.Auth, p.Manager, "manager")
}

func (p ManagerAuthorized) CanExpire(ctx lockbox.Context, h *Header) error {
	if err := h.RequireOpen(); err != nil {
		return err
	}
	return errors.Wrap(errors.ErrState, "manager authorized box never expires")
}

// HashFunc computes the digest a secret is committed with.
type HashFunc func([]byte) []byte

// SecretAndTimeGated lets anyone close a box by revealing the preimage of
// the committed hash, and anyone expire it once the time lock elapsed.
type SecretAndTimeGated struct {
	SecretHash []byte
	// TimeLock is the lifetime of a box in seconds.
	TimeLock int64
	Hash     HashFunc
}

var _ Policy = SecretAndTimeGated{}

// Deadline returns the first moment at which the box can be expired.
func (p SecretAndTimeGated) Deadline(h *Header) lockbox.UnixTime {
	return h.CreatedAt.AddSeconds(p.TimeLock)
}

func (p SecretAndTimeGated) CanClose(ctx lockbox.Context, h *Header, ev Evidence) error {
	if err := h.RequireOpen(); err != nil {
		return err
	}
	if len(ev.Secret) == 0 {
		return errors.Wrap(errors.ErrPreimage, "secret required")
	}
	if !bytes.Equal(p.Hash(ev.Secret), p.SecretHash) {
		return errors.Wrap(errors.ErrPreimage, "secret does not match the commitment")
	}
	return nil
}

func (p SecretAndTimeGated) CanExpire(ctx lockbox.Context, h *Header) error {
	if err := h.RequireOpen(); err != nil {
		return err
	}
	if deadline := p.Deadline(h); !lockbox.IsExpired(ctx, deadline) {
		return errors.Wrapf(errors.ErrNotExpired, "box %s expires at %s", h.Key, deadline)
	}
	return nil
}
