package htlc

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/x/escrow"
	"golang.org/x/crypto/sha3"
)

const (
	SHA256    = "sha256"
	Keccak256 = "keccak256"

	// HashSize is the length of a secret hash produced by any of the
	// supported algorithms.
	HashSize = 32
)

// Hasher returns the hash function of given algorithm. An empty name
// selects SHA256.
func Hasher(algorithm string) (escrow.HashFunc, error) {
	switch algorithm {
	case "", SHA256:
		return func(b []byte) []byte {
			h := sha256.Sum256(b)
			return h[:]
		}, nil
	case Keccak256:
		return func(b []byte) []byte {
			h := sha3.NewLegacyKeccak256()
			_, _ = h.Write(b)
			return h.Sum(nil)
		}, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown hash algorithm %q", algorithm)
	}
}

// HexBytes is a byte slice encoded in JSON as a hex string.
type HexBytes []byte

func (b HexBytes) String() string {
	return strings.ToUpper(hex.EncodeToString(b))
}

func (b HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(b))
}

func (b *HexBytes) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, "hex string expected")
	}
	val, err := hex.DecodeString(enc)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "hex: %s", err)
	}
	*b = val
	return nil
}
