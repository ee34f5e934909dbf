package bst

import "testing"

func TestEmptyHeadBeginEqualsEnd(t *testing.T) {
	head := NewHead[int]()
	if !Empty(head) {
		t.Fatal("fresh head should report empty")
	}
	if InorderSuccessor(head) != head {
		t.Fatal("begin() should equal end() (head) on an empty tree")
	}
	if InorderPredecessor(head) != head {
		t.Fatal("rbegin() should equal rend() (head) on an empty tree")
	}
}

func TestSingleElementBothThreadsToHead(t *testing.T) {
	head := NewHead[int]()
	n := &Node[int]{Key: 42}
	AttachLeft(head, n)

	if Empty(head) {
		t.Fatal("head should no longer report empty")
	}
	if !HasNullLlink(n.Tag) || !HasNullRlink(n.Tag) {
		t.Fatal("single node must have both LBIT and RBIT set")
	}
	if n.Llink != head || n.Rlink != head {
		t.Fatal("single node's links must both thread to head")
	}
	if InorderSuccessor(head) != n {
		t.Fatal("begin() should be the single node")
	}
	if InorderSuccessor(n) != head {
		t.Fatal("successor of the only node should be end() (head)")
	}
}

// buildSorted inserts keys via plain BST descent (mirroring orderedset's
// Insert loop) and returns the resulting inorder sequence plus reverse.
func buildSorted(t *testing.T, keys []int) (head *Node[int], forward, backward []int) {
	t.Helper()
	head = NewHead[int]()
	for _, k := range keys {
		if Empty(head) {
			AttachLeft(head, &Node[int]{Key: k})
			continue
		}
		p := Root(head)
		for {
			if k < p.Key {
				if !HasNullLlink(p.Tag) {
					p = p.Llink
					continue
				}
				q := &Node[int]{Key: k}
				AttachLeft(p, q)
				break
			} else if k > p.Key {
				if !HasNullRlink(p.Tag) {
					p = p.Rlink
					continue
				}
				q := &Node[int]{Key: k}
				AttachRight(p, q)
				break
			} else {
				break // duplicate, skip
			}
		}
	}

	for n := InorderSuccessor(head); n != head; n = InorderSuccessor(n) {
		forward = append(forward, n.Key)
	}
	for n := InorderPredecessor(head); n != head; n = InorderPredecessor(n) {
		backward = append(backward, n.Key)
	}
	return
}

func TestForwardOrderMatchesSorted(t *testing.T) {
	_, forward, backward := buildSorted(t, []int{5, 3, 7, 20, 1, 44, 22, 8})
	want := []int{1, 3, 5, 7, 8, 20, 22, 44}
	if len(forward) != len(want) {
		t.Fatalf("got %v, want %v", forward, want)
	}
	for i := range want {
		if forward[i] != want[i] {
			t.Fatalf("got %v, want %v", forward, want)
		}
	}
	for i := range backward {
		if backward[i] != want[len(want)-1-i] {
			t.Fatalf("reverse traversal %v is not the reverse of %v", backward, forward)
		}
	}
}

func TestPreorderSuccessorVisitsEveryNodeOnce(t *testing.T) {
	head, forward, _ := buildSorted(t, []int{5, 3, 7, 20, 1, 44, 22, 8})

	visited := 0
	for p := PreorderSuccessor(head, head); p != head; p = PreorderSuccessor(p, head) {
		visited++
		if visited > len(forward) {
			t.Fatal("preorder walk did not terminate at head")
		}
	}
	if visited != len(forward) {
		t.Fatalf("preorder visited %d nodes, want %d", visited, len(forward))
	}
}
