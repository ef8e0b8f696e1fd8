// Package bptree implements an in-memory B+ tree: a height-balanced
// ordered index with values stored at the leaf level and leaves joined
// in a doubly linked chain, so range scans cost the tree height plus
// the size of the range.
package bptree

import (
	"cmp"

	"bptree/internal/algo"
	"bptree/internal/base"
)

// MinOrder is the smallest branching factor a B+ tree supports.
const MinOrder = 3

// Tree is the main structure. It owns the root node exclusively; the
// leaf chain is the only non-ownership relation between nodes.
//
// A Tree is not safe for concurrent use. Callers sharing a tree across
// goroutines must supply their own mutual exclusion.
type Tree[K cmp.Ordered, V any] struct {
	order  int
	root   *base.Node[K, V]
	count  int
	height int

	log    Logger
	strict bool
	cache  *lookupCache[K, V]
}

// New creates an empty tree with the given order, the maximum number
// of children per branch node. The root starts as an empty leaf.
func New[K cmp.Ordered, V any](order int, opts ...Option) (*Tree[K, V], error) {
	if order < MinOrder {
		return nil, ErrInvalidOrder
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t := &Tree[K, V]{
		order:  order,
		root:   base.NewLeaf[K, V](order),
		height: 1,
		log:    o.logger,
		strict: o.strictInsert,
	}

	if o.cacheSize > 0 {
		t.cache = newLookupCache[K, V](o.cacheSize)
	}

	return t, nil
}

// Order returns the branching factor fixed at construction.
func (t *Tree[K, V]) Order() int {
	return t.order
}

// Len returns the number of keys in the tree.
func (t *Tree[K, V]) Len() int {
	return t.count
}

// IsEmpty reports whether the tree holds no keys.
func (t *Tree[K, V]) IsEmpty() bool {
	return t.count == 0
}

// Height returns the number of levels including the root level. An
// empty tree has height 1 (a lone leaf root).
func (t *Tree[K, V]) Height() int {
	return t.height
}

// pathEntry records one level of a root-to-leaf descent: the branch
// node visited and the child index taken. Propagation walks the
// recorded path in reverse; nodes hold no parent back-references.
type pathEntry[K cmp.Ordered, V any] struct {
	node       *base.Node[K, V]
	childIndex int
}

// descend walks from the root to the leaf owning key, recording the
// branch path for upward propagation.
func (t *Tree[K, V]) descend(key K) (*base.Node[K, V], []pathEntry[K, V]) {
	n := t.root
	var path []pathEntry[K, V]
	for !n.Leaf {
		i := algo.FindChildIndex(n, key)
		path = append(path, pathEntry[K, V]{node: n, childIndex: i})
		n = n.Children[i]
	}
	return n, path
}

// seekLeaf walks to the leaf owning key without recording the path.
func (t *Tree[K, V]) seekLeaf(key K) *base.Node[K, V] {
	n := t.root
	for !n.Leaf {
		n = n.Children[algo.FindChildIndex(n, key)]
	}
	return n
}

// leftmostLeaf descends through child[0] from the root.
func (t *Tree[K, V]) leftmostLeaf() *base.Node[K, V] {
	n := t.root
	for !n.Leaf {
		n = n.Children[0]
	}
	return n
}

// rightmostLeaf descends through the last child from the root.
func (t *Tree[K, V]) rightmostLeaf() *base.Node[K, V] {
	n := t.root
	for !n.Leaf {
		n = n.Children[len(n.Children)-1]
	}
	return n
}

// Insert adds key with value. An existing key has its value replaced
// in place, unless the tree was built WithStrictInsert, in which case
// ErrKeyExists is returned and the tree is unchanged.
func (t *Tree[K, V]) Insert(key K, value V) error {
	leaf, path := t.descend(key)

	if idx := algo.FindKeyInLeaf(leaf, key); idx >= 0 {
		if t.strict {
			return ErrKeyExists
		}
		algo.ApplyLeafUpdate(leaf, idx, value)
		if t.cache != nil {
			t.cache.invalidate(key)
		}
		return nil
	}

	pos := algo.FindInsertPosition(leaf, key)
	algo.ApplyLeafInsert(leaf, pos, key, value)
	t.count++

	// Split propagation: walk the recorded path upward until a node
	// fits or the root itself splits.
	n := leaf
	for n.Overflow(t.order) {
		var right *base.Node[K, V]
		var sep K
		if n.Leaf {
			right, sep = algo.SplitLeaf(n)
		} else {
			right, sep = algo.SplitBranch(n)
		}

		if len(path) == 0 {
			// Overflow reached the root: a new branch root takes the
			// two halves and the promoted key.
			root := base.NewBranch[K, V](t.order)
			root.Keys = append(root.Keys, sep)
			root.Children = append(root.Children, n, right)
			t.root = root
			t.height++
			t.log.Info("root split", "height", t.height, "keys", t.count)
			return nil
		}

		parent := path[len(path)-1].node
		i := path[len(path)-1].childIndex
		path = path[:len(path)-1]

		parent.Keys = algo.InsertAt(parent.Keys, i, sep)
		parent.Children = algo.InsertAt(parent.Children, i+1, right)
		n = parent
	}

	return nil
}

// Get returns the value stored for key, or ErrKeyNotFound.
func (t *Tree[K, V]) Get(key K) (V, error) {
	if t.cache != nil {
		if v, ok := t.cache.get(key); ok {
			return v, nil
		}
	}

	leaf := t.seekLeaf(key)
	idx := algo.FindKeyInLeaf(leaf, key)
	if idx < 0 {
		var zero V
		return zero, ErrKeyNotFound
	}

	if t.cache != nil {
		t.cache.put(key, leaf.Values[idx])
	}
	return leaf.Values[idx], nil
}

// Delete removes key and reports whether it was present. Deleting an
// absent key is a no-op.
func (t *Tree[K, V]) Delete(key K) bool {
	leaf, path := t.descend(key)
	idx := algo.FindKeyInLeaf(leaf, key)
	if idx < 0 {
		return false
	}

	algo.ApplyLeafDelete(leaf, idx)
	t.count--
	if t.cache != nil {
		t.cache.invalidate(key)
	}

	// Rebalance upward: borrow from a sibling first, merge only when
	// neither side has surplus. A successful borrow leaves the parent's
	// key count unchanged, so propagation stops there.
	n := leaf
	for n != t.root && n.Underflow(t.order) {
		parent := path[len(path)-1].node
		i := path[len(path)-1].childIndex
		path = path[:len(path)-1]

		if i > 0 {
			left := parent.Children[i-1]
			if left.HasSurplus(t.order) {
				algo.BorrowFromLeft(n, left, parent, i-1)
				return true
			}
		}
		if i < len(parent.Children)-1 {
			right := parent.Children[i+1]
			if right.HasSurplus(t.order) {
				algo.BorrowFromRight(n, right, parent, i)
				return true
			}
		}

		if i > 0 {
			algo.Merge(parent.Children[i-1], n, parent, i-1)
		} else {
			algo.Merge(n, parent.Children[i+1], parent, i)
		}
		n = parent
	}

	// A branch root emptied by a merge collapses into its only child.
	// A root leaf may legitimately reach zero keys; the empty leaf
	// stays as the root of the empty tree.
	if !t.root.Leaf && len(t.root.Keys) == 0 {
		t.root = t.root.Children[0]
		t.height--
		t.log.Info("root collapsed", "height", t.height, "keys", t.count)
	}

	return true
}

// Min returns the smallest key and its value, or false on an empty
// tree.
func (t *Tree[K, V]) Min() (K, V, bool) {
	if t.count == 0 {
		var k K
		var v V
		return k, v, false
	}
	leaf := t.leftmostLeaf()
	return leaf.Keys[0], leaf.Values[0], true
}

// Max returns the largest key and its value, or false on an empty
// tree.
func (t *Tree[K, V]) Max() (K, V, bool) {
	if t.count == 0 {
		var k K
		var v V
		return k, v, false
	}
	leaf := t.rightmostLeaf()
	last := len(leaf.Keys) - 1
	return leaf.Keys[last], leaf.Values[last], true
}

// Range calls fn for every pair with low <= key <= high in ascending
// key order, walking the leaf chain from the first in-range leaf. The
// scan stops early when fn returns false. low > high yields nothing.
// fn must not mutate the tree.
func (t *Tree[K, V]) Range(low, high K, fn func(key K, value V) bool) {
	if low > high {
		return
	}

	leaf := t.seekLeaf(low)
	idx := algo.FindInsertPosition(leaf, low)
	for leaf != nil {
		for ; idx < len(leaf.Keys); idx++ {
			if leaf.Keys[idx] > high {
				return
			}
			if !fn(leaf.Keys[idx], leaf.Values[idx]) {
				return
			}
		}
		leaf = leaf.Next
		idx = 0
	}
}
