// Package pool implements the fixed-capacity, single-size node allocator:
// a LIFO free-list threaded through the blocks of a caller-provided byte
// buffer. Allocation and deallocation are O(1) and never touch the Go
// heap, which is the whole point in a realtime context.
package pool

import "unsafe"

// Index is a 1-based handle into a NodeStack's payload. 0 means "no block"
// and doubles as the free-list's nil terminator.
type Index uint32

const headerWords = 3

// headerBytes is the size in bytes of the 3-word prefix: link count,
// free-list top, recorded block size.
var headerBytes = headerWords * unsafe.Sizeof(uintptr(0))

// NodeStack lays a buffer out as a header plus a LIFO free-list of
// equal-size blocks. The zero value is not usable; call Init.
type NodeStack struct {
	buf       []byte // kept alive here so the GC never reclaims it out from under head
	head      unsafe.Pointer
	blockSize uintptr
}

func (s *NodeStack) header() *[headerWords]uintptr {
	return (*[headerWords]uintptr)(s.head)
}

func (s *NodeStack) blockPtr(i Index) unsafe.Pointer {
	return unsafe.Add(s.head, headerBytes+uintptr(i-1)*s.blockSize)
}

func (s *NodeStack) prevOf(i Index) Index {
	return *(*Index)(s.blockPtr(i))
}

func (s *NodeStack) setPrev(i, prev Index) {
	*(*Index)(s.blockPtr(i)) = prev
}

// Init links buf into a free-list of blockSize-sized blocks, or, if buf was
// already linked by a prior NodeStack instance (its link count is
// non-zero), validates that blockSize matches the one recorded at first
// link and joins the existing free-list instead of re-linking it.
//
// buf must be at least 3*sizeof(pointer) + 2*blockSize bytes, and its
// first word must be zero the very first time any NodeStack links it
// (zero-initialized buffers, e.g. a fresh make([]byte, n) or [N]byte{},
// satisfy this for free).
func (s *NodeStack) Init(buf []byte, blockSize uintptr) error {
	if uintptr(len(buf)) < headerBytes+2*blockSize {
		return ErrBufferTooSmall
	}

	s.buf = buf
	s.head = unsafe.Pointer(&buf[0])
	s.blockSize = blockSize

	hdr := s.header()
	if hdr[0] != 0 {
		if hdr[2] != blockSize {
			*s = NodeStack{}
			return ErrSizeMismatch
		}
	} else {
		m := (uintptr(len(buf)) - headerBytes) / blockSize
		for i := Index(2); uintptr(i) <= m; i++ {
			s.setPrev(i, i-1)
		}
		s.setPrev(1, 0)
		hdr[1] = uintptr(m)
		hdr[2] = blockSize
	}
	hdr[0]++
	return nil
}

// Pop removes and returns the top of the free-list. ok is false when the
// pool is exhausted; this is the sole in-band exhaustion signal.
func (s *NodeStack) Pop() (idx Index, ok bool) {
	hdr := s.header()
	top := Index(hdr[1])
	if top == 0 {
		return 0, false
	}
	hdr[1] = uintptr(s.prevOf(top))
	return top, true
}

// Push returns a block to the free-list. Pushing the zero Index is a no-op.
func (s *NodeStack) Push(idx Index) {
	if idx == 0 {
		return
	}
	hdr := s.header()
	s.setPrev(idx, Index(hdr[1]))
	hdr[1] = uintptr(idx)
}

// IndexOf recovers the Index of a block previously returned by Block (or
// the pointer obtained by reinterpreting it as a typed node), so that
// Push can be called back from a raw pointer.
func (s *NodeStack) IndexOf(ptr unsafe.Pointer) Index {
	return Index((uintptr(ptr)-uintptr(s.head)-headerBytes)/s.blockSize) + 1
}

// Block returns a pointer to the raw storage backing idx. The caller is
// responsible for interpreting those bytes as whatever node type the
// NodeStack's blockSize was sized for.
func (s *NodeStack) Block(idx Index) unsafe.Pointer {
	return s.blockPtr(idx)
}

// BlockSize is the recorded per-block size S, fixed at first Init.
func (s *NodeStack) BlockSize() uintptr {
	return s.blockSize
}

// Equal reports whether two handles reference the same underlying buffer.
func (s *NodeStack) Equal(other *NodeStack) bool {
	return s.head == other.head
}

// Linked reports whether Init has been called successfully on this handle.
func (s *NodeStack) Linked() bool {
	return s.head != nil
}
