package orderedset

import "github.com/cockroachdb/errors"

// ErrPoolExhausted is returned by Copy when the destination's pool runs
// out mid-walk. The destination is left holding whatever prefix of the
// source's shape it managed to build before the failure. Insert callers
// never see this error; exhaustion there is reported in-band as
// (End(), false).
var ErrPoolExhausted = errors.New("orderedset: destination pool exhausted during copy")

// ErrDifferentPools is returned by Swap when the two sets are backed by
// different buffers and the two sets' propagation policies do not both
// allow a pool swap.
var ErrDifferentPools = errors.New("orderedset: cannot swap sets backed by different pools")
