// Copyright 2025 zhengshuai.xiao@outlook.com
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package dedup

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/vxst/dedup/internal"
)

// SessionKey is the random 256-bit value that opens and closes the header
// and prefixes every reference record of one container. The low byte of
// the first word is never zero.
type SessionKey [4]uint64

// BoundaryDetector decides whether candidate starts with a record marker.
// It is the only place where the body framing is recognised.
type BoundaryDetector interface {
	Match(candidate []byte) bool
}

// Match reports whether candidate begins with the serialized key. The
// leading byte is compared first so that literal data is rejected without
// decoding the four words.
//
// Literal data that reproduces the key at a block boundary is taken for a
// reference record. The key is fresh per container, so this is possible but
// astronomically unlikely.
func (k SessionKey) Match(candidate []byte) bool {
	if len(candidate) < KeySize || candidate[0] != byte(k[0]) {
		return false
	}
	for i, word := range k {
		if binary.LittleEndian.Uint64(candidate[i*8:]) != word {
			return false
		}
	}
	return true
}

// Valid reports whether the key can be used to frame a container.
func (k SessionKey) Valid() bool {
	return byte(k[0]) != 0
}

// AppendTo appends the little-endian serialization of k to b.
func (k SessionKey) AppendTo(b []byte) []byte {
	for _, word := range k {
		le := internal.UInt64ToBytesLittleEndian(word)
		b = append(b, le[:]...)
	}
	return b
}

func (k SessionKey) String() string {
	return hex.EncodeToString(k.AppendTo(make([]byte, 0, KeySize)))
}

// SessionKeyFromBytes decodes the first KeySize bytes of b.
func SessionKeyFromBytes(b []byte) (SessionKey, error) {
	var k SessionKey
	if len(b) < KeySize {
		return k, fmt.Errorf("%w: need %d bytes, have %d", ErrInvalidSessionKey, KeySize, len(b))
	}
	for i := range k {
		k[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	return k, nil
}

// KeySource hands out one session key per encode.
type KeySource interface {
	NewSessionKey() (SessionKey, error)
}

// RandomKeySource draws keys from Reader, or crypto/rand when Reader is nil.
// Keys with a zero leading byte are discarded and drawn again.
type RandomKeySource struct {
	Reader io.Reader
}

func (s RandomKeySource) NewSessionKey() (SessionKey, error) {
	r := s.Reader
	if r == nil {
		r = rand.Reader
	}
	buf := make([]byte, KeySize)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return SessionKey{}, fmt.Errorf("failed to read session key: %w", err)
		}
		k, err := SessionKeyFromBytes(buf)
		if err != nil {
			return SessionKey{}, err
		}
		if k.Valid() {
			return k, nil
		}
	}
}

// StaticKeySource always returns the same key.
type StaticKeySource SessionKey

func (s StaticKeySource) NewSessionKey() (SessionKey, error) {
	k := SessionKey(s)
	if !k.Valid() {
		return SessionKey{}, fmt.Errorf("%w: leading byte is zero", ErrInvalidSessionKey)
	}
	return k, nil
}
