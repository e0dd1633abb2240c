package x

import (
	"strings"
	"sync"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// PauseView reports whether a module is paused. Module name is the first
// segment of a message path, for example "htlc" for "htlc/close".
type PauseView interface {
	IsPaused(module string) bool
}

// Guard returns ErrPaused if the module is paused.
func Guard(p PauseView, module string) error {
	if p == nil || module == "" {
		return nil
	}
	if p.IsPaused(module) {
		return errors.Wrapf(errors.ErrPaused, "module %q", module)
	}
	return nil
}

// PauseSet is a PauseView backed by a set of module names. It is safe for
// concurrent use.
type PauseSet struct {
	mu     sync.RWMutex
	paused map[string]struct{}
}

var _ PauseView = (*PauseSet)(nil)

// NewPauseSet returns a set with given modules paused.
func NewPauseSet(modules ...string) *PauseSet {
	s := &PauseSet{paused: make(map[string]struct{})}
	for _, m := range modules {
		s.paused[m] = struct{}{}
	}
	return s
}

// IsPaused implements PauseView.
func (s *PauseSet) IsPaused(module string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.paused[module]
	return ok
}

// Pause stops processing of all messages of given module.
func (s *PauseSet) Pause(module string) {
	s.mu.Lock()
	s.paused[module] = struct{}{}
	s.mu.Unlock()
}

// Resume reverts Pause.
func (s *PauseSet) Resume(module string) {
	s.mu.Lock()
	delete(s.paused, module)
	s.mu.Unlock()
}

// PauseDecorator rejects every message of a paused module before it reaches
// the handler.
type PauseDecorator struct {
	view PauseView
}

var _ lockbox.Decorator = PauseDecorator{}

// NewPauseDecorator returns a decorator consulting given view.
func NewPauseDecorator(view PauseView) PauseDecorator {
	return PauseDecorator{view: view}
}

func (d PauseDecorator) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx, next lockbox.Checker) (*lockbox.CheckResult, error) {
	if err := d.guard(tx); err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

func (d PauseDecorator) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx, next lockbox.Deliverer) (*lockbox.DeliverResult, error) {
	if err := d.guard(tx); err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d PauseDecorator) guard(tx lockbox.Tx) error {
	return Guard(d.view, ModuleName(lockbox.GetPath(tx)))
}

// ModuleName returns the module part of a message path.
func ModuleName(path string) string {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
