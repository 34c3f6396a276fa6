package byteutil

import (
	"encoding/binary"
	"unsafe"
)

// EncodeInt64ToBytes renders an int64 as a fixed-width big-endian key, so
// bbolt cursors iterate in numeric order.
func EncodeInt64ToBytes(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func DecodeInt64FromBytes(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b))
}

func BytesToString(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}
