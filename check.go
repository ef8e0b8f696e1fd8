package bptree

import (
	"fmt"

	"bptree/internal/base"
)

// Check verifies every structural invariant of the tree and returns an
// error wrapping ErrCorruption naming the first violation found:
// capacity bounds, strict in-node key order, separator bounds, child
// counts, equal leaf depth, leaf-chain agreement with the in-order
// traversal, and counter agreement. A non-nil result means a bug in
// this package.
func (t *Tree[K, V]) Check() error {
	if err := t.check(); err != nil {
		t.log.Error("invariant check failed", "error", err)
		return err
	}
	return nil
}

func (t *Tree[K, V]) check() error {
	leafDepth := -1
	leaves := 0

	// low is an inclusive bound, high exclusive; nil means unbounded.
	// child[i] holds keys < separator[i], child[i+1] keys >= it.
	var walk func(n *base.Node[K, V], depth int, low, high *K) error
	walk = func(n *base.Node[K, V], depth int, low, high *K) error {
		if n != t.root && n.Underflow(t.order) {
			return fmt.Errorf("%w: node below minimum keys (%d < %d)",
				ErrCorruption, len(n.Keys), base.MinKeys(t.order))
		}
		if n.Overflow(t.order) {
			return fmt.Errorf("%w: node above maximum keys (%d > %d)",
				ErrCorruption, len(n.Keys), base.MaxKeys(t.order))
		}

		for i := range n.Keys {
			if i > 0 && n.Keys[i-1] >= n.Keys[i] {
				return fmt.Errorf("%w: keys not strictly ascending at index %d", ErrCorruption, i)
			}
			if low != nil && n.Keys[i] < *low {
				return fmt.Errorf("%w: key below separator lower bound", ErrCorruption)
			}
			if high != nil && n.Keys[i] >= *high {
				return fmt.Errorf("%w: key at or above separator upper bound", ErrCorruption)
			}
		}

		if n.Leaf {
			if len(n.Values) != len(n.Keys) {
				return fmt.Errorf("%w: leaf has %d values for %d keys",
					ErrCorruption, len(n.Values), len(n.Keys))
			}
			if leafDepth == -1 {
				leafDepth = depth
			} else if depth != leafDepth {
				return fmt.Errorf("%w: leaves at unequal depth (%d != %d)",
					ErrCorruption, depth, leafDepth)
			}
			leaves++
			return nil
		}

		if len(n.Values) != 0 {
			return fmt.Errorf("%w: branch node carries values", ErrCorruption)
		}
		if n.Next != nil || n.Prev != nil {
			return fmt.Errorf("%w: branch node linked into leaf chain", ErrCorruption)
		}
		if len(n.Children) != len(n.Keys)+1 {
			return fmt.Errorf("%w: branch has %d children for %d keys",
				ErrCorruption, len(n.Children), len(n.Keys))
		}

		for i := range n.Children {
			clow, chigh := low, high
			if i > 0 {
				clow = &n.Keys[i-1]
			}
			if i < len(n.Keys) {
				chigh = &n.Keys[i]
			}
			if err := walk(n.Children[i], depth+1, clow, chigh); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(t.root, 1, nil, nil); err != nil {
		return err
	}
	if t.height != leafDepth {
		return fmt.Errorf("%w: height %d disagrees with leaf depth %d",
			ErrCorruption, t.height, leafDepth)
	}

	// The chain, traversed start to end, must yield exactly the sorted
	// key sequence and visit every leaf the tree reaches top-down.
	first := t.leftmostLeaf()
	if first.Prev != nil {
		return fmt.Errorf("%w: chain head has a predecessor", ErrCorruption)
	}
	total := 0
	chainLeaves := 0
	var prev *K
	for leaf := first; leaf != nil; leaf = leaf.Next {
		if !leaf.Leaf {
			return fmt.Errorf("%w: chain contains a branch node", ErrCorruption)
		}
		if leaf.Next != nil && leaf.Next.Prev != leaf {
			return fmt.Errorf("%w: chain back-reference mismatch", ErrCorruption)
		}
		chainLeaves++
		for i := range leaf.Keys {
			if prev != nil && *prev >= leaf.Keys[i] {
				return fmt.Errorf("%w: chain keys not strictly ascending", ErrCorruption)
			}
			prev = &leaf.Keys[i]
			total++
		}
	}
	if chainLeaves != leaves {
		return fmt.Errorf("%w: chain visits %d leaves, tree has %d",
			ErrCorruption, chainLeaves, leaves)
	}
	if total != t.count {
		return fmt.Errorf("%w: chain holds %d keys, size counter says %d",
			ErrCorruption, total, t.count)
	}

	return nil
}
