// Package allocator provides the value-type handle a container holds onto
// a caller-supplied buffer. The handle starts out parameterized on the
// container's element type T; on first use the container rebinds it to
// its own internal node type, at which point the backing node-stack is
// actually initialized with S = sizeof(node type). This mirrors
// std::allocator_traits::rebind without inheriting its name.
package allocator

import (
	"unsafe"

	"github.com/lucmichalski/rtcpp/pool"
)

// PropagationPolicy mirrors the allocator-traits copy/move/swap surface
// without the C++ name: explicit configuration a container is given at
// construction time, rather than a trait baked into the allocator type.
type PropagationPolicy[T any] struct {
	// PropagateOnCopyAssign: if true, a container assignment replaces the
	// destination's allocator with the source's. Default false: the
	// destination keeps its own pool.
	PropagateOnCopyAssign bool
	// PropagateOnMoveAssign mirrors PropagateOnCopyAssign for moves.
	PropagateOnMoveAssign bool
	// PropagateOnSwap: if true, Swap exchanges allocators along with
	// contents. Swapping containers backed by different buffers without
	// this set is a programmer error the container must reject.
	PropagateOnSwap bool
	// SelectOnCopy chooses the allocator a copy-constructed container
	// starts with, given the source's handle. The default, nil, keeps the
	// source's handle, so the copy shares the source's pool (CopyOf treats
	// a nil func as identity).
	SelectOnCopy func(Handle[T]) Handle[T]
}

// DefaultPolicy is the zero-value PropagationPolicy: no propagation on
// copy/move/swap.
func DefaultPolicy[T any]() PropagationPolicy[T] {
	return PropagationPolicy[T]{}
}

// Handle is a value-type wrapper a container holds. Before Rebind it only
// remembers which buffer it will eventually bind to; Poolable reports
// whether T itself (not yet the container's node type) is large enough to
// ever be threaded directly.
type Handle[T any] struct {
	buf []byte
}

// New wraps buf for later rebinding. buf is not touched until Rebind.
func New[T any](buf []byte) Handle[T] {
	return Handle[T]{buf: buf}
}

// Poolable reports whether sizeof(T) >= sizeof(pointer). A handle whose T
// fails this check can still be declared and passed around, but Rebind
// will refuse to bind it to a same-size node type.
func (h Handle[T]) Poolable() bool {
	var zero T
	return unsafe.Sizeof(zero) >= unsafe.Sizeof(uintptr(0))
}

// Equal reports whether two handles, once bound, would reference (or do
// reference) the same buffer.
func (h Handle[T]) Equal(other Handle[T]) bool {
	if len(h.buf) == 0 || len(other.buf) == 0 {
		return len(h.buf) == 0 && len(other.buf) == 0
	}
	return &h.buf[0] == &other.buf[0]
}

// Bound is the result of rebinding a Handle[T] to a container's internal
// node type Node. It owns the actual node-stack and is what Insert/Clear
// call Allocate/Deallocate on.
type Bound[Node any] struct {
	ns pool.NodeStack
}

// Rebind initializes h's buffer as a node-stack of sizeof(Node)-sized
// blocks (or validates it was already linked at that size by an earlier
// rebind over the same buffer) and returns a Bound[Node] ready to
// allocate. This is the one point at which the node-stack actually comes
// into existence; everything before it is bookkeeping.
func Rebind[T, Node any](h Handle[T]) (*Bound[Node], error) {
	var zero Node
	size := unsafe.Sizeof(zero)
	if size < unsafe.Sizeof(uintptr(0)) {
		return nil, ErrNotPoolable
	}
	b := &Bound[Node]{}
	if err := b.ns.Init(h.buf, size); err != nil {
		return nil, err
	}
	return b, nil
}

// Allocate draws exactly one Node slot from the pool. There is no sized
// variant: allocation is always for a single node.
func (b *Bound[Node]) Allocate() (*Node, bool) {
	idx, ok := b.ns.Pop()
	if !ok {
		return nil, false
	}
	return (*Node)(b.ns.Block(idx)), true
}

// Deallocate returns p's slot to the pool. p must have come from Allocate
// on this same Bound.
func (b *Bound[Node]) Deallocate(p *Node) {
	b.ns.Push(b.ns.IndexOf(unsafe.Pointer(p)))
}

// Equal reports whether two bound handles share the same underlying pool.
func (b *Bound[Node]) Equal(other *Bound[Node]) bool {
	return b.ns.Equal(&other.ns)
}
