package internal

import (
	"errors"
)

var (
	ErrUsage          = errors.New("invalid usage")
	ErrDigestMismatch = errors.New("digest mismatch")
)
