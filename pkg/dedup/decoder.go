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
	"errors"
	"fmt"
	"io"

	"github.com/vxst/dedup/internal"
)

// DecodeStats summarises one decode session.
type DecodeStats struct {
	Key         SessionKey
	BytesIn     int64
	BytesOut    int64
	HeaderBytes int64
	DictEntries int
	// References is the number of reference records expanded.
	References int64
	// ReferencedEntries is the number of distinct dictionary entries used.
	ReferencedEntries int
	RawBlocks         int64
	TailBytes         int
}

// Decoder restores the original stream from a container.
type Decoder struct {
	cfg Config
}

func NewDecoder(cfg Config) (*Decoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Decoder{cfg: cfg}, nil
}

// ReadHeader loads at most MaxHeaderSize bytes from the start of src and
// parses the header out of them.
func (d *Decoder) ReadHeader(src io.ReadSeeker) (*Header, error) {
	size, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to size input: %w", err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind input: %w", err)
	}

	buf := make([]byte, min(d.cfg.MaxHeaderSize(), size))
	n, err := io.ReadFull(src, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	return ParseHeader(buf[:n], d.cfg.BlockSize)
}

// Decode writes the original stream encoded in src to dst. Nothing is
// written when the header is malformed.
func (d *Decoder) Decode(src io.ReadSeeker, dst io.Writer) (DecodeStats, error) {
	var stats DecodeStats

	h, err := d.ReadHeader(src)
	if err != nil {
		return stats, err
	}
	stats.Key = h.Key
	stats.HeaderBytes = h.Size
	stats.DictEntries = h.Dict.Len()
	logger.Tracef("header is %d bytes with %d dictionary entries", h.Size, h.Dict.Len())

	if _, err := src.Seek(h.Size, io.SeekStart); err != nil {
		return stats, fmt.Errorf("failed to seek to body: %w", err)
	}

	blockSize := d.cfg.BlockSize
	r := bufio.NewReaderSize(src, max(ioBufferSize, blockSize))
	w := bufio.NewWriterSize(dst, ioBufferSize)
	used := internal.NewUInt64Set()
	pos := h.Size

	emit := func(b []byte) error {
		n, err := w.Write(b)
		stats.BytesOut += int64(n)
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	for {
		p, err := r.Peek(blockSize)
		if err != nil && err != io.EOF {
			return stats, fmt.Errorf("failed to read body at offset %d: %w", pos, err)
		}

		if h.Key.Match(p) {
			fp, err := ParseRecord(p)
			if err != nil {
				return stats, fmt.Errorf("offset %d: %w", pos, err)
			}
			block, ok := h.Dict.Get(fp)
			if !ok {
				return stats, fmt.Errorf("%w: %s at offset %d", ErrDictionaryMiss, fpString(fp), pos)
			}
			if err := emit(block); err != nil {
				return stats, err
			}
			if _, err := r.Discard(RecordSize); err != nil {
				return stats, fmt.Errorf("failed to skip record at offset %d: %w", pos, err)
			}
			pos += RecordSize
			stats.References++
			used.Add(fp)
			continue
		}

		if err := emit(p); err != nil {
			return stats, err
		}
		pos += int64(len(p))
		if len(p) < blockSize {
			stats.TailBytes = len(p)
			break
		}
		stats.RawBlocks++
		if _, err := r.Discard(len(p)); err != nil {
			return stats, fmt.Errorf("failed to skip block at offset %d: %w", pos, err)
		}
	}

	if err := w.Flush(); err != nil {
		return stats, fmt.Errorf("failed to flush output: %w", err)
	}
	stats.BytesIn = pos
	stats.ReferencedEntries = used.Len()

	logger.Debugf("decoded %d bytes into %d: %d references, %d raw blocks",
		stats.BytesIn, stats.BytesOut, stats.References, stats.RawBlocks)
	return stats, nil
}

// Inspect walks a container the way Decode does without producing output.
func (d *Decoder) Inspect(src io.ReadSeeker) (DecodeStats, error) {
	return d.Decode(src, io.Discard)
}
