package byteutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInt64RoundTrip(t *testing.T) {
	t.Parallel()

	for _, id := range []int64{0, 1, 42, 1<<40 + 7, -100} {
		require.Equal(t, id, DecodeInt64FromBytes(EncodeInt64ToBytes(id)))
	}
}

func TestEncodedKeysSortNumerically(t *testing.T) {
	t.Parallel()

	ids := []int64{0, 1, 255, 256, 1 << 20, 1 << 40}
	for i := 1; i < len(ids); i++ {
		prev, next := EncodeInt64ToBytes(ids[i-1]), EncodeInt64ToBytes(ids[i])
		require.True(t, bytes.Compare(prev, next) < 0, "keys must keep cursor order")
	}
}

func TestBytesToString(t *testing.T) {
	t.Parallel()

	b := []byte("stat\x00\x00\x00\x00\x00\x00\x00\x2a")
	require.Equal(t, string(b), BytesToString(b))
}
