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
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/vxst/dedup/internal"
)

// Tag is the literal signature at offset 0 of every container.
var Tag = [TagSize]byte{'D', 'E', 'D', 'U', 'P', 0xb2, 0xe1, 0x7a}

// Header is the decoded container preamble.
//
// Layout:
//
//	[Tag: 8] [SessionKey: 32] [dictionary block: BlockSize]... [SessionKey: 32]
//
// Dictionary entries carry no fingerprint; it is recomputed from the bytes.
// The repeated key closes the dictionary.
type Header struct {
	Key  SessionKey
	Dict *Dictionary
	// Size is the number of bytes the header occupies in the container.
	Size int64
}

// HeaderSize returns the encoded size of a header with n dictionary blocks.
func HeaderSize(blockSize, n int) int64 {
	return TagSize + 2*KeySize + int64(blockSize)*int64(n)
}

// WriteHeader writes the container header for key and dict to w. Blocks
// are emitted in ascending fingerprint order so the output is reproducible
// for a fixed key.
func WriteHeader(w io.Writer, key SessionKey, dict *Dictionary) (int64, error) {
	bw := bufio.NewWriter(w)
	keyBytes := key.AppendTo(make([]byte, 0, KeySize))

	var written int64
	write := func(b []byte) error {
		n, err := bw.Write(b)
		written += int64(n)
		return err
	}

	if err := write(Tag[:]); err != nil {
		return written, fmt.Errorf("failed to write header tag: %w", err)
	}
	if err := write(keyBytes); err != nil {
		return written, fmt.Errorf("failed to write session key: %w", err)
	}
	for _, fp := range dict.Fingerprints() {
		block, _ := dict.Get(fp)
		if err := write(block); err != nil {
			return written, fmt.Errorf("failed to write dictionary block %s: %w", fpString(fp), err)
		}
	}
	if err := write(keyBytes); err != nil {
		return written, fmt.Errorf("failed to write header sentinel: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("failed to flush header: %w", err)
	}
	return written, nil
}

// ParseHeader decodes a header from the start of buf. buf must hold the
// whole header; trailing body bytes are ignored.
func ParseHeader(buf []byte, blockSize int) (*Header, error) {
	c := newCursor(buf)

	tag, err := c.next(TagSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	if !bytes.Equal(tag, Tag[:]) {
		return nil, fmt.Errorf("%w: unexpected tag %s", ErrInvalidHeader, internal.StringToHex(string(tag)))
	}

	raw, err := c.next(KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: session key: %w", ErrTruncatedHeader, err)
	}
	key, err := SessionKeyFromBytes(raw)
	if err != nil {
		return nil, err
	}

	dict := NewDictionary()
	for {
		if candidate, ok := c.peek(KeySize); ok && key.Match(candidate) {
			break
		}
		block, err := c.next(blockSize)
		if err != nil {
			return nil, fmt.Errorf("%w: no sentinel after %d dictionary blocks: %w", ErrTruncatedHeader, dict.Len(), err)
		}
		dict.Put(block)
	}
	if _, err := c.next(KeySize); err != nil {
		return nil, fmt.Errorf("%w: sentinel: %w", ErrTruncatedHeader, err)
	}

	return &Header{Key: key, Dict: dict, Size: int64(c.offset())}, nil
}

// AppendRecord appends the reference record for fp under key to b.
func AppendRecord(b []byte, key SessionKey, fp uint64) []byte {
	b = key.AppendTo(b)
	le := internal.UInt64ToBytesLittleEndian(fp)
	return append(b, le[:]...)
}

// ParseRecord returns the fingerprint carried by the reference record at
// the start of b. The caller has already matched the key.
func ParseRecord(b []byte) (uint64, error) {
	c := newCursor(b)
	if _, err := c.next(KeySize); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTruncatedRecord, err)
	}
	fp, err := c.uint64()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTruncatedRecord, err)
	}
	return fp, nil
}

func fpString(fp uint64) string {
	le := internal.UInt64ToBytesLittleEndian(fp)
	return internal.StringToHex(string(le[:]))
}
