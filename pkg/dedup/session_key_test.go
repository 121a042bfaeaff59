package dedup

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionKeyBytes(t *testing.T) {
	raw := testKey.AppendTo(nil)
	require.Len(t, raw, KeySize)
	assert.Equal(t, byte(0x88), raw[0], "words are little-endian")
	assert.Equal(t, byte(0x11), raw[7])

	k, err := SessionKeyFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, testKey, k)

	_, err = SessionKeyFromBytes(raw[:KeySize-1])
	assert.ErrorIs(t, err, ErrInvalidSessionKey)

	assert.Equal(t, "887766554433221100ffeeddccbbaa99efcdab89674523011032547698badcfe", testKey.String())
}

func TestSessionKeyMatch(t *testing.T) {
	raw := testKey.AppendTo(nil)

	lastWord := bytes.Clone(raw)
	lastWord[KeySize-1] ^= 0x01
	firstByte := bytes.Clone(raw)
	firstByte[0] ^= 0x01

	testCases := []struct {
		name      string
		candidate []byte
		expected  bool
	}{
		{"Exact", raw, true},
		{"Longer Candidate", append(bytes.Clone(raw), 1, 2, 3, 4, 5, 6, 7, 8), true},
		{"Too Short", raw[:KeySize-1], false},
		{"Empty", nil, false},
		{"First Byte Differs", firstByte, false},
		{"Last Word Differs", lastWord, false},
		{"Zeros", make([]byte, 64), false},
	}

	var detector BoundaryDetector = testKey
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, detector.Match(tc.candidate))
		})
	}
}

func TestRandomKeySourceSkipsZeroLeadingByte(t *testing.T) {
	valid := testKey.AppendTo(nil)
	stream := append(make([]byte, KeySize), valid...) // first draw has a zero leading byte

	k, err := RandomKeySource{Reader: bytes.NewReader(stream)}.NewSessionKey()
	require.NoError(t, err)
	assert.Equal(t, testKey, k)
}

func TestRandomKeySourceCrypto(t *testing.T) {
	src := RandomKeySource{}
	a, err := src.NewSessionKey()
	require.NoError(t, err)
	b, err := src.NewSessionKey()
	require.NoError(t, err)

	assert.True(t, a.Valid())
	assert.True(t, b.Valid())
	assert.NotEqual(t, a, b)
}

func TestRandomKeySourceReadError(t *testing.T) {
	_, err := RandomKeySource{Reader: bytes.NewReader(make([]byte, 10))}.NewSessionKey()
	assert.Error(t, err)
}

func TestStaticKeySource(t *testing.T) {
	k, err := StaticKeySource(testKey).NewSessionKey()
	require.NoError(t, err)
	assert.Equal(t, testKey, k)

	_, err = StaticKeySource(SessionKey{0xff00, 1, 2, 3}).NewSessionKey()
	assert.True(t, errors.Is(err, ErrInvalidSessionKey))
}
