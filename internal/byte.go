package internal

import (
	"encoding/binary"
	"encoding/hex"
)

// BytesToUInt64LittleEndian decodes a little-endian uint64.
func BytesToUInt64LittleEndian(b [8]byte) uint64 {
	return binary.LittleEndian.Uint64(b[:])
}

func UInt64ToBytesLittleEndian(i uint64) [8]byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], i)
	return b
}

func StringToHex(s string) string {
	return hex.EncodeToString([]byte(s))
}
