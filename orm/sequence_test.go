package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/lockbox/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	cases := map[string]struct {
		bucket     string
		name       string
		increments int64
		want       int64
	}{
		"fresh sequence": {
			bucket: "boxes", name: "deposit", increments: 22, want: 22,
		},
		"another name in the same bucket is separate": {
			bucket: "boxes", name: "withdraw", increments: 11, want: 11,
		},
		"existing sequence continues": {
			bucket: "boxes", name: "deposit", increments: 18, want: 40,
		},
	}

	// map iteration is random, so run the cases in a fixed order
	for _, name := range []string{
		"fresh sequence",
		"another name in the same bucket is separate",
		"existing sequence continues",
	} {
		tc := cases[name]
		t.Run(name, func(t *testing.T) {
			s := NewSequence(tc.bucket, tc.name)
			_, orig, err := s.Latest(db)
			require.NoError(t, err)

			var val int64
			for i := int64(0); i < tc.increments; i++ {
				val, err = s.NextInt(db)
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, val)

			// make sure final value is bigger than original value if
			// we use the raw bytes to index stuff
			_, last, err := s.Latest(db)
			require.NoError(t, err)
			assert.Equal(t, 1, bytes.Compare(last, orig))
		})
	}
}

func TestDecodeSequence(t *testing.T) {
	val, err := DecodeSequence(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), val)

	val, err = DecodeSequence(EncodeSequence(1234))
	require.NoError(t, err)
	assert.Equal(t, int64(1234), val)

	_, err = DecodeSequence([]byte{1, 2})
	require.Error(t, err)
}
