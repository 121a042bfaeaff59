package dedup

import (
	"fmt"
	"io"
)

// Chunk is one block read from the input.
// Data is only valid until the next call to Next.
type Chunk struct {
	Data []byte
	Off  int64
	Len  int
}

// Chunker returns the next chunk from a stream.
type Chunker interface {
	Next() (Chunk, error)
}

// FixedCDC creates chunkers that cut a stream into ChunkSize pieces.
type FixedCDC struct {
	ChunkSize int
}

// NewChunker creates a new chunker that reads from r and produces fixed-size chunks.
func (f *FixedCDC) NewChunker(r io.Reader) (Chunker, error) {
	if f.ChunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d", ErrInvalidConfig, f.ChunkSize)
	}
	return &fixedChunker{
		r:   r,
		buf: make([]byte, f.ChunkSize),
	}, nil
}

// fixedChunker reuses one buffer for every chunk it returns.
type fixedChunker struct {
	r   io.Reader
	buf []byte
	off int64
}

// Next returns the next fixed-size chunk. Only the last chunk of the
// stream can be shorter than the chunk size.
func (c *fixedChunker) Next() (Chunk, error) {
	n, err := io.ReadFull(c.r, c.buf)
	off := c.off
	c.off += int64(n)

	if err == io.EOF { // Clean end of stream, no bytes read.
		return Chunk{}, io.EOF
	}
	if err == io.ErrUnexpectedEOF { // Last partial chunk.
		return Chunk{Data: c.buf[:n], Off: off, Len: n}, nil
	}
	if err != nil {
		return Chunk{}, err
	}
	return Chunk{Data: c.buf, Off: off, Len: n}, nil
}
