package base

import "cmp"

// Node is a B+ tree node. A single struct backs both variants: Leaf
// reports which one, and field use is disjoint per variant. Values are
// populated only in leaves, Children only in branches.
type Node[K cmp.Ordered, V any] struct {
	Leaf bool

	Keys     []K
	Values   []V           // leaf only
	Children []*Node[K, V] // branch only

	// Leaf chain in key order. Navigational only, the chain never owns
	// a node; nil at the ends.
	Next *Node[K, V]
	Prev *Node[K, V]
}

// MaxKeys is the key capacity of a node in a tree of the given order.
func MaxKeys(order int) int {
	return order - 1
}

// MinKeys is the minimum key count for non-root nodes: ceil(order/2)-1.
func MinKeys(order int) int {
	return (order+1)/2 - 1
}

// NewLeaf creates an empty leaf sized for the given order.
func NewLeaf[K cmp.Ordered, V any](order int) *Node[K, V] {
	return &Node[K, V]{
		Leaf:   true,
		Keys:   make([]K, 0, order),
		Values: make([]V, 0, order),
	}
}

// NewBranch creates an empty branch sized for the given order.
func NewBranch[K cmp.Ordered, V any](order int) *Node[K, V] {
	return &Node[K, V]{
		Keys:     make([]K, 0, order),
		Children: make([]*Node[K, V], 0, order+1),
	}
}

// NumKeys returns the current key count.
func (n *Node[K, V]) NumKeys() int {
	return len(n.Keys)
}

// Overflow reports whether the node holds more keys than its capacity.
func (n *Node[K, V]) Overflow(order int) bool {
	return len(n.Keys) > MaxKeys(order)
}

// Underflow reports whether the node has too few keys. The root is
// exempt; callers must not apply this to it.
func (n *Node[K, V]) Underflow(order int) bool {
	return len(n.Keys) < MinKeys(order)
}

// HasSurplus reports whether the node can give up one key to a sibling
// without underflowing.
func (n *Node[K, V]) HasSurplus(order int) bool {
	return len(n.Keys) > MinKeys(order)
}
