package dedup

import (
	"slices"
)

// Dictionary maps fingerprints to the literal bytes of deduplicated blocks.
type Dictionary struct {
	blocks map[uint64][]byte
}

func NewDictionary() *Dictionary {
	return &Dictionary{blocks: make(map[uint64][]byte)}
}

// Put stores a copy of block under its fingerprint and returns the
// fingerprint. An existing entry is overwritten.
func (d *Dictionary) Put(block []byte) uint64 {
	fp := Fingerprint(block)
	d.put(fp, block)
	return fp
}

func (d *Dictionary) put(fp uint64, block []byte) {
	if existing, ok := d.blocks[fp]; ok && len(existing) == len(block) {
		copy(existing, block)
		return
	}
	d.blocks[fp] = slices.Clone(block)
}

// Get returns the block stored under fp. The slice must not be modified.
func (d *Dictionary) Get(fp uint64) ([]byte, bool) {
	block, ok := d.blocks[fp]
	return block, ok
}

func (d *Dictionary) Len() int {
	return len(d.blocks)
}

// Fingerprints returns the stored fingerprints in ascending order.
func (d *Dictionary) Fingerprints() []uint64 {
	fps := make([]uint64, 0, len(d.blocks))
	for fp := range d.blocks {
		fps = append(fps, fp)
	}
	slices.Sort(fps)
	return fps
}

// DictBuilder fills a Dictionary with every block the counter saw more than
// once. Two different blocks sharing a fingerprint are stored as one entry;
// that aliasing is not detected.
type DictBuilder struct {
	counter *FreqCounter
	dict    *Dictionary
}

func NewDictBuilder(counter *FreqCounter) *DictBuilder {
	return &DictBuilder{counter: counter, dict: NewDictionary()}
}

// Scan records block if its fingerprint survived pruning with a count > 1.
func (b *DictBuilder) Scan(block []byte) {
	fp := Fingerprint(block)
	if b.counter.Count(fp) > 1 {
		b.dict.put(fp, block)
	}
}

func (b *DictBuilder) Dictionary() *Dictionary {
	return b.dict
}
