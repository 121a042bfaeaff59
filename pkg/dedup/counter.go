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
	"cmp"
	"slices"
)

// FreqCounter counts fingerprint occurrences across a pass over the input.
//
// It is an approximate top-K: Prune drops every entry outside the current
// top threshold, and a dropped fingerprint that shows up again restarts at
// a count of 1. This bounds memory for a single streaming pass at the cost
// of undercounting blocks whose repeats are far apart.
type FreqCounter struct {
	counts     map[uint64]uint32
	sincePrune int
	prunes     int
}

// NewFreqCounter returns an empty counter sized for capacity entries.
func NewFreqCounter(capacity int) *FreqCounter {
	return &FreqCounter{counts: make(map[uint64]uint32, capacity)}
}

// Observe fingerprints block and increments its count.
func (c *FreqCounter) Observe(block []byte) uint64 {
	fp := Fingerprint(block)
	c.counts[fp]++
	c.sincePrune++
	return fp
}

// Count returns the surviving count for fp, 0 if it is not tracked.
func (c *FreqCounter) Count(fp uint64) uint32 {
	return c.counts[fp]
}

func (c *FreqCounter) Len() int {
	return len(c.counts)
}

// SincePrune is the number of blocks observed since the last Prune.
func (c *FreqCounter) SincePrune() int {
	return c.sincePrune
}

// Prunes is the number of times Prune has run.
func (c *FreqCounter) Prunes() int {
	return c.prunes
}

type freqEntry struct {
	fp    uint64
	count uint32
}

// Prune keeps the threshold entries with the highest counts and returns
// how many were evicted. Equal counts are ordered by ascending fingerprint.
// The surviving map is reallocated with room for 3*threshold entries, the
// amount the encoder lets it grow before pruning again.
func (c *FreqCounter) Prune(threshold int) int {
	c.sincePrune = 0
	c.prunes++

	entries := make([]freqEntry, 0, len(c.counts))
	for fp, count := range c.counts {
		entries = append(entries, freqEntry{fp: fp, count: count})
	}
	slices.SortFunc(entries, func(a, b freqEntry) int {
		if a.count != b.count {
			return cmp.Compare(b.count, a.count)
		}
		return cmp.Compare(a.fp, b.fp)
	})

	evicted := 0
	if len(entries) > threshold {
		evicted = len(entries) - threshold
		entries = entries[:threshold]
	}

	counts := make(map[uint64]uint32, 3*threshold)
	for _, e := range entries {
		counts[e.fp] = e.count
	}
	c.counts = counts

	logger.Debugf("pruned frequency map to %d entries, evicted %d", len(counts), evicted)
	return evicted
}
