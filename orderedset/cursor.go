package orderedset

import "github.com/lucmichalski/rtcpp/bst"

// Cursor is a bidirectional position in a Set's inorder sequence. It holds
// a single node pointer; Next/Prev mutate it in place the way ++/--
// mutate a C++ iterator. The zero Cursor is meaningless; obtain one from
// a Set's Begin/End/RBegin/REnd/Find/Insert.
type Cursor[T any] struct {
	node *bst.Node[T]
}

// Next advances the cursor to its inorder successor.
func (c *Cursor[T]) Next() {
	c.node = bst.InorderSuccessor(c.node)
}

// Prev moves the cursor to its inorder predecessor.
func (c *Cursor[T]) Prev() {
	c.node = bst.InorderPredecessor(c.node)
}

// Key returns the key at the cursor's current position. Calling it on an
// End()/REnd() cursor (the head sentinel) is a programmer error; the
// sentinel carries no key.
func (c Cursor[T]) Key() T {
	return c.node.Key
}

// Equal reports pointer equality of the two cursors' positions.
func (c Cursor[T]) Equal(other Cursor[T]) bool {
	return c.node == other.node
}
