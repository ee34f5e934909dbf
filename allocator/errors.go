package allocator

import "github.com/cockroachdb/errors"

// ErrNotPoolable is returned by Rebind when the target node type is
// smaller than a pointer: there is no room to thread a free-list through
// blocks that small, so this handle variant refuses to allocate. It
// exists so a container can still be declared over the allocator type
// even when it will never actually draw from the pool.
var ErrNotPoolable = errors.New("allocator: node type too small to be poolable")
