// Package orderedset composes pool, allocator, and bst into a
// realtime-friendly ordered-set container: unique keys, inorder iteration,
// find/count/insert, all without ever touching the Go heap after
// construction. The tree is deliberately unbalanced: there is no
// rebalancing jitter, and no logarithmic bound is guaranteed.
package orderedset

import (
	"github.com/lucmichalski/rtcpp/allocator"
	"github.com/lucmichalski/rtcpp/bst"
	"golang.org/x/exp/constraints"
)

// Set is an unbalanced threaded-BST ordered set backed by a fixed-capacity
// node pool. It is not safe for concurrent use; the owning goroutine must
// serialize all access, including across Copy/Swap/Equal pairs.
type Set[T any] struct {
	head   *bst.Node[T]
	handle allocator.Handle[T]
	pool   *allocator.Bound[bst.Node[T]]
	less   func(a, b T) bool
	Policy allocator.PropagationPolicy[T]
}

// New constructs an empty set backed by buf, ordered by less (a strict
// weak ordering: equivalence is !less(a,b) && !less(b,a)). buf must be at
// least 3*sizeof(pointer) + 2*sizeof(node) bytes and zero-initialized the
// first time any allocator handle links it.
func New[T any](buf []byte, less func(a, b T) bool) (*Set[T], error) {
	h := allocator.New[T](buf)
	bound, err := allocator.Rebind[T, bst.Node[T]](h)
	if err != nil {
		return nil, err
	}
	return &Set[T]{
		head:   bst.NewHead[T](),
		handle: h,
		pool:   bound,
		less:   less,
	}, nil
}

// NewOrdered is a convenience constructor for key types with a natural
// order, defaulting the comparator to <.
func NewOrdered[T constraints.Ordered](buf []byte) (*Set[T], error) {
	return New[T](buf, func(a, b T) bool { return a < b })
}

// NewFromSlice constructs a set over buf and inserts every element of
// keys in order, silently skipping duplicates and, once the pool is
// exhausted, silently skipping the rest.
func NewFromSlice[T any](buf []byte, less func(a, b T) bool, keys []T) (*Set[T], error) {
	s, err := New[T](buf, less)
	if err != nil {
		return nil, err
	}
	s.InsertSlice(keys)
	return s, nil
}

// Insert adds key if no equivalent key is already present. It returns a
// cursor to the (possibly pre-existing) equivalent node and whether an
// insertion actually happened. Pool exhaustion yields (End(), false);
// callers must not treat that as "found a duplicate at end()".
func (s *Set[T]) Insert(key T) (Cursor[T], bool) {
	if bst.Empty(s.head) {
		q, ok := s.pool.Allocate()
		if !ok {
			logger.Debug("orderedset: insert into empty tree failed, pool exhausted")
			return s.End(), false
		}
		q.Key = key
		bst.AttachLeft(s.head, q)
		return Cursor[T]{node: q}, true
	}

	p := bst.Root(s.head)
	for {
		switch {
		case s.less(key, p.Key):
			if !bst.HasNullLlink(p.Tag) {
				p = p.Llink
				continue
			}
			q, ok := s.pool.Allocate()
			if !ok {
				logger.Debug("orderedset: insert failed, pool exhausted")
				return s.End(), false
			}
			q.Key = key
			bst.AttachLeft(p, q)
			return Cursor[T]{node: q}, true
		case s.less(p.Key, key):
			if !bst.HasNullRlink(p.Tag) {
				p = p.Rlink
				continue
			}
			q, ok := s.pool.Allocate()
			if !ok {
				logger.Debug("orderedset: insert failed, pool exhausted")
				return s.End(), false
			}
			q.Key = key
			bst.AttachRight(p, q)
			return Cursor[T]{node: q}, true
		default:
			return Cursor[T]{node: p}, false
		}
	}
}

// InsertSlice inserts each key in order, ignoring both duplicates and
// exhaustion failures one element at a time (it never aborts the loop).
func (s *Set[T]) InsertSlice(keys []T) {
	for _, k := range keys {
		s.Insert(k)
	}
}

// Find returns a cursor to the node equivalent to key, or End() if none.
func (s *Set[T]) Find(key T) Cursor[T] {
	if bst.Empty(s.head) {
		return s.End()
	}
	p := bst.Root(s.head)
	for {
		switch {
		case s.less(key, p.Key):
			if !bst.HasNullLlink(p.Tag) {
				p = p.Llink
				continue
			}
			return s.End()
		case s.less(p.Key, key):
			if !bst.HasNullRlink(p.Tag) {
				p = p.Rlink
				continue
			}
			return s.End()
		default:
			return Cursor[T]{node: p}
		}
	}
}

// Count returns 1 if key is present, 0 otherwise. This is a set, not a
// multiset, so no other value is possible.
func (s *Set[T]) Count(key T) int {
	if s.Find(key).Equal(s.End()) {
		return 0
	}
	return 1
}

// Begin returns a cursor to the smallest key, or End() if empty.
func (s *Set[T]) Begin() Cursor[T] {
	return Cursor[T]{node: bst.InorderSuccessor(s.head)}
}

// End returns the cursor one past the largest key.
func (s *Set[T]) End() Cursor[T] {
	return Cursor[T]{node: s.head}
}

// RBegin returns a cursor to the largest key, or REnd() if empty.
func (s *Set[T]) RBegin() Cursor[T] {
	return Cursor[T]{node: bst.InorderPredecessor(s.head)}
}

// REnd returns the cursor one before the smallest key.
func (s *Set[T]) REnd() Cursor[T] {
	return Cursor[T]{node: s.head}
}

// Size walks the tree to count its elements. The tree stores no count of
// its own, so this is O(n), not O(1).
func (s *Set[T]) Size() int {
	n := 0
	for c, end := s.Begin(), s.End(); !c.Equal(end); c.Next() {
		n++
	}
	return n
}

// Empty reports emptiness in O(1) via the head sentinel's tag.
func (s *Set[T]) Empty() bool {
	return bst.Empty(s.head)
}

// Clear destroys every key, returns every node to the pool, and resets
// head to its just-initialized state.
func (s *Set[T]) Clear() {
	p := s.head
	for {
		q := bst.InorderSuccessor(p)
		if p != s.head {
			s.pool.Deallocate(p)
		}
		if q == s.head {
			break
		}
		p = q
	}
	s.head.Llink = s.head
	s.head.Rlink = s.head
	s.head.Tag = bst.LBIT
}

// Swap exchanges the contents of a and b in O(1). If they are backed by
// different pools, the swap only proceeds when both sets' Policy has
// PropagateOnSwap set; otherwise it returns ErrDifferentPools and neither
// set is modified.
func Swap[T any](a, b *Set[T]) error {
	samePool := a.pool.Equal(b.pool)
	if !samePool && !(a.Policy.PropagateOnSwap && b.Policy.PropagateOnSwap) {
		return ErrDifferentPools
	}
	a.head, b.head = b.head, a.head
	a.less, b.less = b.less, a.less
	if !samePool {
		a.handle, b.handle = b.handle, a.handle
		a.pool, b.pool = b.pool, a.pool
	}
	return nil
}

// Copy deep-copies src's tree shape (not just its sorted keys; the shape
// encodes insertion history) into dst, allocating every new node from
// dst's own pool. dst should be empty before calling Copy; any existing
// nodes in dst are not released. If dst's pool exhausts mid-walk, Copy
// returns ErrPoolExhausted and dst is left holding a partial prefix of
// src's shape.
func Copy[T any](dst, src *Set[T]) error {
	p := src.head
	q := dst.head

	for {
		if !bst.HasNullLlink(p.Tag) {
			tmp, ok := dst.pool.Allocate()
			if !ok {
				logger.Debug("orderedset: copy halted, destination pool exhausted")
				return ErrPoolExhausted
			}
			bst.AttachLeft(q, tmp)
		}

		p = bst.PreorderSuccessor(p, src.head)
		q = bst.PreorderSuccessor(q, dst.head)

		if p == src.head {
			break
		}

		if !bst.HasNullRlink(p.Tag) {
			tmp, ok := dst.pool.Allocate()
			if !ok {
				logger.Debug("orderedset: copy halted, destination pool exhausted")
				return ErrPoolExhausted
			}
			bst.AttachRight(q, tmp)
		}

		q.Key = p.Key
	}
	return nil
}

// NewCopy constructs a new set backed by buf, over a separate pool from
// src, and deep-copies src's shape into it.
func NewCopy[T any](buf []byte, src *Set[T]) (*Set[T], error) {
	dst, err := New[T](buf, src.less)
	if err != nil {
		return nil, err
	}
	if err := Copy(dst, src); err != nil {
		return dst, err
	}
	return dst, nil
}

// CopyOf copy-constructs a new set from src. The copy's allocator handle
// is chosen by src.Policy.SelectOnCopy given src's own handle; the
// default, nil, keeps src's handle, so the copy draws its nodes from the
// same buffer as src. Use NewCopy to force a separate buffer instead.
func CopyOf[T any](src *Set[T]) (*Set[T], error) {
	h := src.handle
	if src.Policy.SelectOnCopy != nil {
		h = src.Policy.SelectOnCopy(h)
	}
	bound, err := allocator.Rebind[T, bst.Node[T]](h)
	if err != nil {
		return nil, err
	}
	dst := &Set[T]{
		head:   bst.NewHead[T](),
		handle: h,
		pool:   bound,
		less:   src.less,
		Policy: src.Policy,
	}
	if err := Copy(dst, src); err != nil {
		return dst, err
	}
	return dst, nil
}

// Assign clears dst and deep-copies src into it, as if by Clear then
// Copy. If dst's Policy has PropagateOnCopyAssign set, dst first adopts
// src's allocator (and so draws the copied nodes from src's pool); by
// default it keeps its own.
func Assign[T any](dst, src *Set[T]) error {
	dst.Clear()
	if dst.Policy.PropagateOnCopyAssign && !dst.handle.Equal(src.handle) {
		dst.handle = src.handle
		dst.pool = src.pool
	}
	return Copy(dst, src)
}

// Equal reports element-wise equality: same size, and every corresponding
// pair of elements in inorder sequence compares equivalent under a's
// comparator. The size check is redundant with the element walk but is
// kept as an early-exit.
func Equal[T any](a, b *Set[T]) bool {
	if a.Size() != b.Size() {
		return false
	}
	ca, ea := a.Begin(), a.End()
	cb, eb := b.Begin(), b.End()
	for !ca.Equal(ea) && !cb.Equal(eb) {
		if a.less(ca.Key(), cb.Key()) || a.less(cb.Key(), ca.Key()) {
			return false
		}
		ca.Next()
		cb.Next()
	}
	return true
}
