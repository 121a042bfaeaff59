package internal

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// StreamDigest returns the xxhash64 digest of everything read from r and
// the number of bytes consumed.
func StreamDigest(r io.Reader) (uint64, int64, error) {
	h := xxhash.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return 0, n, fmt.Errorf("failed to digest stream: %w", err)
	}
	return h.Sum64(), n, nil
}

// DigestWriter digests everything written through it.
type DigestWriter struct {
	h *xxhash.Digest
	n int64
}

func NewDigestWriter() *DigestWriter {
	return &DigestWriter{h: xxhash.New()}
}

func (w *DigestWriter) Write(p []byte) (int, error) {
	n, err := w.h.Write(p)
	w.n += int64(n)
	return n, err
}

func (w *DigestWriter) Sum64() uint64 {
	return w.h.Sum64()
}

func (w *DigestWriter) Len() int64 {
	return w.n
}
