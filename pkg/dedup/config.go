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

import "fmt"

const (
	DefaultBlockSize = 512
	DefaultDictSize  = 256 * 1024
	DefaultRatio     = 16

	// TagSize is the length of the literal format signature.
	TagSize = 8
	// KeySize is the length of the serialized session key.
	KeySize = 32
	// HashSize is the length of a serialized fingerprint.
	HashSize = 8
	// RecordSize is the length of a reference record in the body.
	RecordSize = KeySize + HashSize
)

// Config holds the codec parameters. Encoder and decoder must agree on
// BlockSize and DictSize; neither is recorded in the container.
type Config struct {
	BlockSize int
	DictSize  int
	// Ratio scales DictSize into the entry bound used by mid-stream pruning.
	Ratio int
}

func DefaultConfig() Config {
	return Config{
		BlockSize: DefaultBlockSize,
		DictSize:  DefaultDictSize,
		Ratio:     DefaultRatio,
	}
}

func (c Config) Validate() error {
	switch {
	case c.BlockSize < RecordSize:
		return fmt.Errorf("%w: block size %d is smaller than a reference record (%d)", ErrInvalidConfig, c.BlockSize, RecordSize)
	case c.DictSize < 1:
		return fmt.Errorf("%w: dictionary size %d", ErrInvalidConfig, c.DictSize)
	case c.Ratio < 1:
		return fmt.Errorf("%w: ratio %d", ErrInvalidConfig, c.Ratio)
	}
	return nil
}

// pruneThreshold is the entry count kept by each mid-stream prune.
func (c Config) pruneThreshold() int {
	return c.DictSize * c.Ratio
}

// MaxHeaderSize is the largest header a container built with c can carry.
func (c Config) MaxHeaderSize() int64 {
	return TagSize + 2*KeySize + int64(c.BlockSize)*int64(c.DictSize)
}
