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
	"fmt"
	"io"

	"github.com/vxst/dedup/internal"
)

var logger = internal.GetLogger("dedup")

const (
	ioBufferSize = 256 * 1024
	// initialCounterCap caps the up-front allocation of the frequency map.
	initialCounterCap = 1 << 16
)

// EncodeStats summarises one encode session.
type EncodeStats struct {
	Key         SessionKey
	BytesIn     int64
	BytesOut    int64
	HeaderBytes int64
	// Blocks is the number of full-size blocks in the input.
	Blocks int64
	// Deduped is the number of blocks replaced by reference records.
	Deduped     int64
	TailBytes   int
	DictEntries int
	Prunes      int
}

// Encoder rewrites a stream into a deduplicated container.
type Encoder struct {
	cfg  Config
	keys KeySource
}

// NewEncoder returns an encoder for cfg. A nil keys draws session keys
// from crypto/rand.
func NewEncoder(cfg Config, keys KeySource) (*Encoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if keys == nil {
		keys = RandomKeySource{}
	}
	return &Encoder{cfg: cfg, keys: keys}, nil
}

// Encode reads src three times: to count block frequencies, to collect the
// dictionary, and to write the body. src is rewound before each pass.
func (e *Encoder) Encode(src io.ReadSeeker, dst io.Writer) (EncodeStats, error) {
	var stats EncodeStats

	key, err := e.keys.NewSessionKey()
	if err != nil {
		return stats, fmt.Errorf("failed to create session key: %w", err)
	}
	if !key.Valid() {
		return stats, fmt.Errorf("%w: leading byte is zero", ErrInvalidSessionKey)
	}
	stats.Key = key

	counter, err := e.countBlocks(src)
	if err != nil {
		return stats, err
	}
	stats.Prunes = counter.Prunes()

	dict, err := e.buildDictionary(src, counter)
	if err != nil {
		return stats, err
	}
	stats.DictEntries = dict.Len()

	w := bufio.NewWriterSize(dst, ioBufferSize)
	stats.HeaderBytes, err = WriteHeader(w, key, dict)
	if err != nil {
		return stats, err
	}
	stats.BytesOut = stats.HeaderBytes

	record := make([]byte, 0, RecordSize)
	err = e.forEachChunk(src, func(chunk Chunk) error {
		stats.BytesIn += int64(chunk.Len)
		out := chunk.Data
		if chunk.Len < e.cfg.BlockSize {
			stats.TailBytes = chunk.Len
		} else {
			stats.Blocks++
			fp := Fingerprint(chunk.Data)
			if _, ok := dict.Get(fp); ok {
				record = AppendRecord(record[:0], key, fp)
				out = record
				stats.Deduped++
			}
		}
		n, err := w.Write(out)
		stats.BytesOut += int64(n)
		if err != nil {
			return fmt.Errorf("failed to write block at offset %d: %w", chunk.Off, err)
		}
		return nil
	})
	if err != nil {
		return stats, err
	}
	if err := w.Flush(); err != nil {
		return stats, fmt.Errorf("failed to flush output: %w", err)
	}

	logger.Debugf("encoded %d bytes into %d: %d blocks, %d deduped, %d dictionary entries",
		stats.BytesIn, stats.BytesOut, stats.Blocks, stats.Deduped, stats.DictEntries)
	return stats, nil
}

// countBlocks is the first pass. Every 3*DictSize*Ratio blocks the map is
// cut back to DictSize*Ratio entries; the final cut leaves DictSize.
func (e *Encoder) countBlocks(src io.ReadSeeker) (*FreqCounter, error) {
	threshold := e.cfg.pruneThreshold()
	counter := NewFreqCounter(min(3*threshold, initialCounterCap))

	err := e.forEachChunk(src, func(chunk Chunk) error {
		if chunk.Len < e.cfg.BlockSize {
			return nil
		}
		counter.Observe(chunk.Data)
		if counter.SincePrune() >= 3*threshold {
			counter.Prune(threshold)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("frequency pass: %w", err)
	}

	counter.Prune(e.cfg.DictSize)
	logger.Tracef("frequency pass done, %d candidates after %d prunes", counter.Len(), counter.Prunes())
	return counter, nil
}

// buildDictionary is the second pass.
func (e *Encoder) buildDictionary(src io.ReadSeeker, counter *FreqCounter) (*Dictionary, error) {
	builder := NewDictBuilder(counter)
	err := e.forEachChunk(src, func(chunk Chunk) error {
		if chunk.Len == e.cfg.BlockSize {
			builder.Scan(chunk.Data)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dictionary pass: %w", err)
	}
	logger.Tracef("dictionary pass done, %d entries", builder.Dictionary().Len())
	return builder.Dictionary(), nil
}

// forEachChunk rewinds src and calls fn for every block in order.
func (e *Encoder) forEachChunk(src io.ReadSeeker, fn func(Chunk) error) error {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind input: %w", err)
	}
	cdc := &FixedCDC{ChunkSize: e.cfg.BlockSize}
	chunker, err := cdc.NewChunker(bufio.NewReaderSize(src, ioBufferSize))
	if err != nil {
		return err
	}
	for {
		chunk, err := chunker.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if err := fn(chunk); err != nil {
			return err
		}
	}
}
