package dedup

import (
	"fmt"
	"io"

	"github.com/vxst/dedup/internal"
)

// cursor reads forward through an in-memory buffer with bounds checks.
type cursor struct {
	buf []byte
	off int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) offset() int {
	return c.off
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.off
}

// peek returns the next n bytes without consuming them.
func (c *cursor) peek(n int) ([]byte, bool) {
	if n < 0 || c.remaining() < n {
		return nil, false
	}
	return c.buf[c.off : c.off+n], true
}

// next consumes and returns the next n bytes.
func (c *cursor) next(n int) ([]byte, error) {
	b, ok := c.peek(n)
	if !ok {
		return nil, fmt.Errorf("need %d bytes at offset %d, have %d: %w", n, c.off, c.remaining(), io.ErrUnexpectedEOF)
	}
	c.off += n
	return b, nil
}

func (c *cursor) uint64() (uint64, error) {
	b, err := c.next(8)
	if err != nil {
		return 0, err
	}
	return internal.BytesToUInt64LittleEndian([8]byte(b)), nil
}
