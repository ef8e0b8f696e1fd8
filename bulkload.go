package bptree

import (
	"cmp"

	"bptree/internal/algo"
	"bptree/internal/base"
)

// BulkLoader builds a tree from pre-sorted input much faster than
// repeated Insert: leaves fill left to right and join the chain as
// they are produced, then branch levels are assembled bottom-up over
// each subtree's first key. No splits, no rebalancing.
//
// Keys MUST arrive in strictly ascending order. A loader is single
// use; it must not be touched after Finalize.
type BulkLoader[K cmp.Ordered, V any] struct {
	order int
	opts  []Option

	leaves  []*base.Node[K, V]
	current *base.Node[K, V]
	last    *K // enforces sorted order
	count   int
}

// NewBulkLoader creates a loader producing a tree of the given order.
// The options are applied to the finalized tree.
func NewBulkLoader[K cmp.Ordered, V any](order int, opts ...Option) (*BulkLoader[K, V], error) {
	if order < MinOrder {
		return nil, ErrInvalidOrder
	}
	return &BulkLoader[K, V]{order: order, opts: opts}, nil
}

// Set appends a key-value pair. Keys out of order fail with
// ErrKeysUnsorted and are not stored.
func (l *BulkLoader[K, V]) Set(key K, value V) error {
	if l.last != nil && key <= *l.last {
		return ErrKeysUnsorted
	}

	// Fill each leaf to capacity; an underfull tail leaf is fixed up
	// in Finalize.
	if l.current == nil || len(l.current.Keys) == base.MaxKeys(l.order) {
		leaf := base.NewLeaf[K, V](l.order)
		if l.current != nil {
			l.current.Next = leaf
			leaf.Prev = l.current
		}
		l.leaves = append(l.leaves, leaf)
		l.current = leaf
	}

	l.current.Keys = append(l.current.Keys, key)
	l.current.Values = append(l.current.Values, value)
	l.count++

	k := key
	l.last = &k
	return nil
}

// Len returns the number of pairs loaded so far.
func (l *BulkLoader[K, V]) Len() int {
	return l.count
}

// Finalize assembles and returns the tree. An empty loader fails with
// ErrBulkLoaderEmpty.
func (l *BulkLoader[K, V]) Finalize() (*Tree[K, V], error) {
	if l.count == 0 {
		return nil, ErrBulkLoaderEmpty
	}

	t, err := New[K, V](l.order, l.opts...)
	if err != nil {
		return nil, err
	}

	// An underfull tail leaf takes pairs from its predecessor, which
	// is full, so both end at or above the minimum.
	if len(l.leaves) > 1 {
		tail := l.leaves[len(l.leaves)-1]
		prev := l.leaves[len(l.leaves)-2]
		for len(tail.Keys) < base.MinKeys(l.order) {
			last := len(prev.Keys) - 1
			tail.Keys = algo.InsertAt(tail.Keys, 0, prev.Keys[last])
			tail.Values = algo.InsertAt(tail.Values, 0, prev.Values[last])
			prev.Keys = prev.Keys[:last]
			prev.Values = prev.Values[:last]
		}
	}

	// Build branch levels bottom-up until a single root remains.
	level := l.leaves
	height := 1
	for len(level) > 1 {
		level = l.buildLevel(level)
		height++
	}

	t.root = level[0]
	t.count = l.count
	t.height = height

	l.leaves = nil
	l.current = nil
	return t, nil
}

// buildLevel groups nodes under new branch parents, separating
// adjacent children by the right child's smallest reachable key.
func (l *BulkLoader[K, V]) buildLevel(children []*base.Node[K, V]) []*base.Node[K, V] {
	var parents []*base.Node[K, V]
	var cur *base.Node[K, V]
	for _, child := range children {
		if cur == nil || len(cur.Children) == l.order {
			cur = base.NewBranch[K, V](l.order)
			parents = append(parents, cur)
		}
		if len(cur.Children) > 0 {
			cur.Keys = append(cur.Keys, firstKey(child))
		}
		cur.Children = append(cur.Children, child)
	}

	// Same tail fix-up as for leaves: the last branch takes children
	// from its full predecessor until it satisfies the minimum.
	if len(parents) > 1 {
		tail := parents[len(parents)-1]
		prev := parents[len(parents)-2]
		for len(tail.Keys) < base.MinKeys(l.order) {
			moved := prev.Children[len(prev.Children)-1]
			prev.Children = prev.Children[:len(prev.Children)-1]
			prev.Keys = prev.Keys[:len(prev.Keys)-1]

			tail.Keys = algo.InsertAt(tail.Keys, 0, firstKey(tail.Children[0]))
			tail.Children = algo.InsertAt(tail.Children, 0, moved)
		}
	}

	return parents
}

// firstKey returns the smallest key reachable under n.
func firstKey[K cmp.Ordered, V any](n *base.Node[K, V]) K {
	for !n.Leaf {
		n = n.Children[0]
	}
	return n.Keys[0]
}
