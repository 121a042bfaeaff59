package dedup

import (
	"github.com/spaolacci/murmur3"
)

const (
	fpSeedLow  uint32 = 0
	fpSeedHigh uint32 = 0x740d023
)

// Fingerprint returns the 64-bit content hash of block: two MurmurHash3
// x86_32 digests with different seeds in the low and high halves. The
// length is folded into each digest, so a short block never trivially
// collides with a full one. It is an equality proxy, not a cryptographic
// hash.
func Fingerprint(block []byte) uint64 {
	lo := murmur3.Sum32WithSeed(block, fpSeedLow)
	hi := murmur3.Sum32WithSeed(block, fpSeedHigh)
	return uint64(lo) | uint64(hi)<<32
}
