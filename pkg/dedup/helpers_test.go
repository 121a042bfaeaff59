package dedup

import (
	"math/rand/v2"

	"github.com/stretchr/testify/mock"
)

var testKey = SessionKey{0x1122334455667788, 0x99aabbccddeeff00, 0x0123456789abcdef, 0xfedcba9876543210}

// patternBlock returns size pseudo-random bytes determined by seed.
func patternBlock(seed uint64, size int) []byte {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	b := make([]byte, size)
	for i := range b {
		b[i] = byte(r.Uint32())
	}
	return b
}

func concat(blocks ...[]byte) []byte {
	var out []byte
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}

// mockKeySource is a testify mock of KeySource.
type mockKeySource struct {
	mock.Mock
}

func (m *mockKeySource) NewSessionKey() (SessionKey, error) {
	args := m.Called()
	return args.Get(0).(SessionKey), args.Error(1)
}
