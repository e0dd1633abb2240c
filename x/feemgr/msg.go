package feemgr

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// ReassignMsg replaces the collector of a fee role.
type ReassignMsg struct {
	Role      Role            `json:"role"`
	Collector lockbox.Address `json:"collector"`
}

var _ lockbox.Msg = (*ReassignMsg)(nil)

func (ReassignMsg) Path() string {
	return "feemgr/reassign"
}

func (m *ReassignMsg) Validate() error {
	if err := m.Role.Validate(); err != nil {
		return err
	}
	if err := m.Collector.Validate(); err != nil {
		return errors.Wrap(err, "collector")
	}
	return nil
}
