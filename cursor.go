package bptree

import (
	"cmp"

	"bptree/internal/algo"
	"bptree/internal/base"
)

// Cursor provides ordered iteration over tree keys by walking the leaf
// chain. A cursor starts in an invalid state; position it with First,
// Last, or Seek. Any mutation of the tree invalidates open cursors.
type Cursor[K cmp.Ordered, V any] struct {
	tree  *Tree[K, V]
	leaf  *base.Node[K, V]
	index int
	valid bool
}

// Cursor returns a new unpositioned cursor.
func (t *Tree[K, V]) Cursor() *Cursor[K, V] {
	return &Cursor[K, V]{tree: t}
}

// First positions the cursor at the smallest key.
func (c *Cursor[K, V]) First() bool {
	c.leaf = c.tree.leftmostLeaf()
	c.index = 0
	c.valid = len(c.leaf.Keys) > 0
	return c.valid
}

// Last positions the cursor at the largest key.
func (c *Cursor[K, V]) Last() bool {
	c.leaf = c.tree.rightmostLeaf()
	c.index = len(c.leaf.Keys) - 1
	c.valid = c.index >= 0
	return c.valid
}

// Seek positions the cursor at the first key >= target.
func (c *Cursor[K, V]) Seek(target K) bool {
	leaf := c.tree.seekLeaf(target)
	idx := algo.FindInsertPosition(leaf, target)
	if idx == len(leaf.Keys) {
		// Past this leaf's last key; the successor, if any, heads the
		// next leaf in the chain.
		leaf = leaf.Next
		idx = 0
	}
	c.leaf = leaf
	c.index = idx
	c.valid = leaf != nil && idx < len(leaf.Keys)
	return c.valid
}

// Next advances to the next key in order. Returns false past the end;
// the cursor becomes invalid.
func (c *Cursor[K, V]) Next() bool {
	if !c.valid {
		return false
	}
	c.index++
	if c.index >= len(c.leaf.Keys) {
		c.leaf = c.leaf.Next
		c.index = 0
		if c.leaf == nil {
			c.valid = false
			return false
		}
	}
	return true
}

// Prev steps back to the previous key in order. Returns false before
// the start; the cursor becomes invalid.
func (c *Cursor[K, V]) Prev() bool {
	if !c.valid {
		return false
	}
	c.index--
	if c.index < 0 {
		c.leaf = c.leaf.Prev
		if c.leaf == nil {
			c.valid = false
			return false
		}
		c.index = len(c.leaf.Keys) - 1
	}
	return true
}

// Valid reports whether the cursor is positioned on a key.
func (c *Cursor[K, V]) Valid() bool {
	return c.valid
}

// Key returns the key under the cursor, or the zero key when invalid.
func (c *Cursor[K, V]) Key() K {
	if !c.valid {
		var zero K
		return zero
	}
	return c.leaf.Keys[c.index]
}

// Value returns the value under the cursor, or the zero value when
// invalid.
func (c *Cursor[K, V]) Value() V {
	if !c.valid {
		var zero V
		return zero
	}
	return c.leaf.Values[c.index]
}
