package dedup

import (
	"bytes"
	"encoding/binary"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

// murmur32Reference is a word-by-word rendition of MurmurHash3 x86_32 used
// to pin the fingerprint to the container format.
func murmur32Reference(data []byte, seed uint32) uint32 {
	scramble := func(k uint32) uint32 {
		k *= 0xcc9e2d51
		k = bits.RotateLeft32(k, 15)
		k *= 0x1b873593
		return k
	}
	h := seed
	n := len(data)
	for i := 0; i+4 <= n; i += 4 {
		h ^= scramble(binary.LittleEndian.Uint32(data[i:]))
		h = bits.RotateLeft32(h, 13)
		h = h*5 + 0xe6546b64
	}
	var k uint32
	tail := data[n&^3:]
	for i := len(tail); i > 0; i-- {
		k <<= 8
		k |= uint32(tail[i-1])
	}
	h ^= scramble(k)
	h ^= uint32(n)
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

func TestFingerprintMatchesReference(t *testing.T) {
	data := patternBlock(7, 4096)
	for _, n := range []int{0, 1, 2, 3, 4, 5, 31, 40, 511, 512, 513, 4096} {
		want := uint64(murmur32Reference(data[:n], 0)) | uint64(murmur32Reference(data[:n], 0x740d023))<<32
		assert.Equal(t, want, Fingerprint(data[:n]), "length %d", n)
	}
}

func TestFingerprintEmpty(t *testing.T) {
	// Seed 0 over no input finalises to 0; the high half does not.
	fp := Fingerprint(nil)
	assert.Equal(t, uint32(0), uint32(fp))
	assert.NotEqual(t, uint32(0), uint32(fp>>32))
}

func TestFingerprintDeterministic(t *testing.T) {
	a := patternBlock(1, DefaultBlockSize)
	b := bytes.Clone(a)
	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	b[len(b)-1] ^= 0x01
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprintMixesLength(t *testing.T) {
	zeros := make([]byte, DefaultBlockSize)
	assert.NotEqual(t, Fingerprint(zeros), Fingerprint(zeros[:DefaultBlockSize-1]))
	assert.NotEqual(t, Fingerprint(zeros), Fingerprint(zeros[:DefaultBlockSize-4]))
}

func TestFingerprintDistinctBlocks(t *testing.T) {
	seen := make(map[uint64]int)
	for i := 0; i < 10000; i++ {
		fp := Fingerprint(patternBlock(uint64(i), 64))
		prev, dup := seen[fp]
		assert.False(t, dup, "blocks %d and %d collide", prev, i)
		seen[fp] = i
	}
}
