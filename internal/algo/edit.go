package algo

import (
	"cmp"

	"bptree/internal/base"
)

// ApplyLeafUpdate replaces the value at pos.
func ApplyLeafUpdate[K cmp.Ordered, V any](n *base.Node[K, V], pos int, value V) {
	n.Values[pos] = value
}

// ApplyLeafInsert inserts a new key-value pair at pos.
func ApplyLeafInsert[K cmp.Ordered, V any](n *base.Node[K, V], pos int, key K, value V) {
	n.Keys = InsertAt(n.Keys, pos, key)
	n.Values = InsertAt(n.Values, pos, value)
}

// ApplyLeafDelete removes the key-value pair at idx.
func ApplyLeafDelete[K cmp.Ordered, V any](n *base.Node[K, V], idx int) {
	n.Keys = RemoveAt(n.Keys, idx)
	n.Values = RemoveAt(n.Values, idx)
}

// ApplyBranchRemoveSeparator removes the separator at sepIdx and the
// child at sepIdx+1 after a merge.
func ApplyBranchRemoveSeparator[K cmp.Ordered, V any](n *base.Node[K, V], sepIdx int) {
	n.Keys = RemoveAt(n.Keys, sepIdx)
	n.Children = RemoveAt(n.Children, sepIdx+1)
}

// SplitLeaf divides an overflowing leaf at its midpoint and splices the
// new right leaf into the chain. The separator is a copy of the right
// half's first key; the key itself stays in the leaf so the pair
// remains retrievable at leaf level.
func SplitLeaf[K cmp.Ordered, V any](n *base.Node[K, V]) (right *base.Node[K, V], sep K) {
	mid := len(n.Keys) / 2

	right = &base.Node[K, V]{
		Leaf:   true,
		Keys:   append([]K(nil), n.Keys[mid:]...),
		Values: append([]V(nil), n.Values[mid:]...),
	}
	n.Keys = n.Keys[:mid:mid]
	n.Values = n.Values[:mid:mid]

	right.Next = n.Next
	right.Prev = n
	if right.Next != nil {
		right.Next.Prev = right
	}
	n.Next = right

	return right, right.Keys[0]
}

// SplitBranch divides an overflowing branch at its midpoint. The middle
// key is promoted: it moves up to the parent and appears in neither
// half.
func SplitBranch[K cmp.Ordered, V any](n *base.Node[K, V]) (right *base.Node[K, V], sep K) {
	mid := len(n.Keys) / 2
	sep = n.Keys[mid]

	right = &base.Node[K, V]{
		Keys:     append([]K(nil), n.Keys[mid+1:]...),
		Children: append([]*base.Node[K, V](nil), n.Children[mid+1:]...),
	}
	keep := mid + 1
	n.Keys = n.Keys[:mid:mid]
	n.Children = n.Children[:keep:keep]

	return right, sep
}

// BorrowFromLeft moves the last element of the left sibling to the
// front of n and rewrites the shared parent separator. The caller must
// have checked the sibling for surplus.
//
// Leaf borrow moves actual data and re-copies the separator; branch
// borrow rotates through the parent, pulling the old separator down and
// pushing the sibling's last key up.
func BorrowFromLeft[K cmp.Ordered, V any](n, left, parent *base.Node[K, V], sepIdx int) {
	last := len(left.Keys) - 1
	if n.Leaf {
		n.Keys = InsertAt(n.Keys, 0, left.Keys[last])
		n.Values = InsertAt(n.Values, 0, left.Values[last])
		left.Keys = left.Keys[:last]
		left.Values = left.Values[:last]
		parent.Keys[sepIdx] = n.Keys[0]
	} else {
		n.Keys = InsertAt(n.Keys, 0, parent.Keys[sepIdx])
		parent.Keys[sepIdx] = left.Keys[last]
		n.Children = InsertAt(n.Children, 0, left.Children[len(left.Children)-1])
		left.Children = left.Children[:len(left.Children)-1]
		left.Keys = left.Keys[:last]
	}
}

// BorrowFromRight moves the first element of the right sibling to the
// end of n and rewrites the shared parent separator.
func BorrowFromRight[K cmp.Ordered, V any](n, right, parent *base.Node[K, V], sepIdx int) {
	if n.Leaf {
		n.Keys = append(n.Keys, right.Keys[0])
		n.Values = append(n.Values, right.Values[0])
		right.Keys = RemoveAt(right.Keys, 0)
		right.Values = RemoveAt(right.Values, 0)
		parent.Keys[sepIdx] = right.Keys[0]
	} else {
		n.Keys = append(n.Keys, parent.Keys[sepIdx])
		parent.Keys[sepIdx] = right.Keys[0]
		n.Children = append(n.Children, right.Children[0])
		right.Children = RemoveAt(right.Children, 0)
		right.Keys = RemoveAt(right.Keys, 0)
	}
}

// Merge concatenates right into left and removes the separator and the
// right child from the parent. Branch merges pull the separator down
// into the merged node; leaf merges discard it, since leaf separators
// are routing copies, and unlink right from the chain.
//
// The caller must pass siblings: parent.Children[sepIdx] == left and
// parent.Children[sepIdx+1] == right.
func Merge[K cmp.Ordered, V any](left, right, parent *base.Node[K, V], sepIdx int) {
	if left.Leaf {
		left.Keys = append(left.Keys, right.Keys...)
		left.Values = append(left.Values, right.Values...)
		left.Next = right.Next
		if right.Next != nil {
			right.Next.Prev = left
		}
	} else {
		left.Keys = append(left.Keys, parent.Keys[sepIdx])
		left.Keys = append(left.Keys, right.Keys...)
		left.Children = append(left.Children, right.Children...)
	}

	ApplyBranchRemoveSeparator(parent, sepIdx)
}
