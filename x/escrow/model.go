package escrow

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
)

// KeySize is the width of every box key.
const KeySize = 32

// Key identifies a box within its namespace.
type Key []byte

// Validate returns an error unless the key has exactly KeySize bytes.
func (k Key) Validate() error {
	if len(k) != KeySize {
		return errors.Wrapf(errors.ErrInput, "box key must be %d bytes, got %d", KeySize, len(k))
	}
	return nil
}

func (k Key) String() string {
	return strings.ToUpper(hex.EncodeToString(k))
}

// MarshalJSON encodes the key as a hex string.
func (k Key) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Key) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, "box key must be a hex string")
	}
	b, err := hex.DecodeString(enc)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "box key: %s", err)
	}
	*k = b
	return nil
}

// ParseKey decodes a hex encoded box key.
func ParseKey(enc string) (Key, error) {
	b, err := hex.DecodeString(enc)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "box key: %s", err)
	}
	k := Key(b)
	return k, k.Validate()
}

// State of a box. The zero value describes a key that was never used.
type State int32

const (
	Invalid State = iota
	Open
	Closed
	Expired
)

var stateNames = map[State]string{
	Invalid: "INVALID",
	Open:    "OPEN",
	Closed:  "CLOSED",
	Expired: "EXPIRED",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "UNKNOWN"
}

// MarshalJSON encodes the state using its name.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *State) UnmarshalJSON(raw []byte) error {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return errors.Wrap(errors.ErrInput, "state must be a string")
	}
	for st, n := range stateNames {
		if n == name {
			*s = st
			return nil
		}
	}
	return errors.Wrapf(errors.ErrInput, "unknown state %q", name)
}

// IsTerminal returns true for states that a box never leaves.
func (s State) IsTerminal() bool {
	return s == Closed || s == Expired
}

// Transition returns an error unless a box can move between given states.
// Only an open box can change its state, and only into a terminal one.
func Transition(from, to State) error {
	if from != Open {
		return errors.Wrapf(errors.ErrState, "box is %s", from)
	}
	if !to.IsTerminal() {
		return errors.Wrapf(errors.ErrState, "cannot move box to %s", to)
	}
	return nil
}

// Validate checks the header of a stored box.
func (h *Header) Validate() error {
	if h == nil {
		return errors.Wrap(errors.ErrModel, "missing header")
	}
	if err := h.Key.Validate(); err != nil {
		return errors.Wrap(err, "key")
	}
	if err := h.Trader.Validate(); err != nil {
		return errors.Wrap(err, "trader")
	}
	if coin.IsEmpty(h.Principal) || !h.Principal.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "principal must be positive")
	}
	if err := h.Principal.Validate(); err != nil {
		return errors.Wrap(err, "principal")
	}
	if h.State == Invalid {
		return errors.Wrap(errors.ErrState, "stored box cannot be invalid")
	}
	if _, ok := stateNames[h.State]; !ok {
		return errors.Wrapf(errors.ErrState, "unknown state %d", h.State)
	}
	if err := h.CreatedAt.Validate(); err != nil {
		return errors.Wrap(err, "created at")
	}
	return nil
}

// RequireOpen returns ErrState unless the box is open.
func (h *Header) RequireOpen() error {
	if h.State != Open {
		return errors.Wrapf(errors.ErrState, "box %s is %s", h.Key, h.State)
	}
	return nil
}

func (m *Pointer) Validate() error {
	if m.Index <= 0 {
		return errors.Wrap(errors.ErrModel, "arena index must be positive")
	}
	return nil
}

// Now returns the block time of the processed transaction, used to stamp
// newly created boxes.
func Now(ctx lockbox.Context) (lockbox.UnixTime, error) {
	t, ok := lockbox.BlockTime(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrState, "block time not present in context")
	}
	return lockbox.AsUnixTime(t), nil
}
