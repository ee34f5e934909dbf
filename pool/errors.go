package pool

import "github.com/cockroachdb/errors"

// Sentinel errors returned by NodeStack.Init. Match with errors.Is.
var (
	// ErrBufferTooSmall is returned when the supplied buffer cannot hold
	// the header plus at least two blocks of the requested size.
	ErrBufferTooSmall = errors.New("pool: buffer too small for header and 2 blocks")

	// ErrSizeMismatch is returned when a buffer already linked by a prior
	// NodeStack is re-linked with a different block size.
	ErrSizeMismatch = errors.New("pool: buffer already linked for a different block size")
)
