package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bptree/internal/base"
)

func leafWithPairs(keys ...int) *base.Node[int, string] {
	n := base.NewLeaf[int, string](len(keys) + 2)
	for _, k := range keys {
		n.Keys = append(n.Keys, k)
		n.Values = append(n.Values, "v")
	}
	return n
}

func TestSplitLeaf(t *testing.T) {
	t.Parallel()

	left := leafWithPairs(1, 2, 3, 4, 5)
	after := leafWithPairs(9)
	left.Next = after
	after.Prev = left

	right, sep := SplitLeaf(left)

	// The separator is copied up; the key stays in the right leaf.
	assert.Equal(t, 3, sep)
	assert.Equal(t, []int{1, 2}, left.Keys)
	assert.Equal(t, []int{3, 4, 5}, right.Keys)
	assert.True(t, right.Leaf)
	assert.Len(t, left.Values, 2)
	assert.Len(t, right.Values, 3)

	// Chain splice: left <-> right <-> after.
	assert.Same(t, right, left.Next)
	assert.Same(t, left, right.Prev)
	assert.Same(t, after, right.Next)
	assert.Same(t, right, after.Prev)
}

func TestSplitLeafAtChainEnd(t *testing.T) {
	t.Parallel()

	left := leafWithPairs(1, 2, 3, 4)
	right, sep := SplitLeaf(left)

	assert.Equal(t, 3, sep)
	assert.Equal(t, []int{1, 2}, left.Keys)
	assert.Equal(t, []int{3, 4}, right.Keys)
	assert.Nil(t, right.Next)
	assert.Same(t, right, left.Next)
}

func TestSplitBranch(t *testing.T) {
	t.Parallel()

	n := base.NewBranch[int, string](8)
	n.Keys = append(n.Keys, 10, 20, 30, 40, 50)
	children := make([]*base.Node[int, string], 6)
	for i := range children {
		children[i] = leafWithPairs(i)
		n.Children = append(n.Children, children[i])
	}

	right, sep := SplitBranch(n)

	// The middle key is promoted and appears in neither half.
	assert.Equal(t, 30, sep)
	assert.Equal(t, []int{10, 20}, n.Keys)
	assert.Equal(t, []int{40, 50}, right.Keys)
	assert.False(t, right.Leaf)

	require.Len(t, n.Children, 3)
	require.Len(t, right.Children, 3)
	assert.Same(t, children[0], n.Children[0])
	assert.Same(t, children[2], n.Children[2])
	assert.Same(t, children[3], right.Children[0])
	assert.Same(t, children[5], right.Children[2])
}

func TestBorrowFromLeftLeaf(t *testing.T) {
	t.Parallel()

	left := leafWithPairs(1, 2, 3)
	n := leafWithPairs(7)
	parent := base.NewBranch[int, string](4)
	parent.Keys = append(parent.Keys, 7)
	parent.Children = append(parent.Children, left, n)

	BorrowFromLeft(n, left, parent, 0)

	assert.Equal(t, []int{1, 2}, left.Keys)
	assert.Equal(t, []int{3, 7}, n.Keys)
	assert.Equal(t, []int{3}, parent.Keys)
	assert.Len(t, left.Values, 2)
	assert.Len(t, n.Values, 2)
}

func TestBorrowFromRightLeaf(t *testing.T) {
	t.Parallel()

	n := leafWithPairs(1)
	right := leafWithPairs(5, 6, 7)
	parent := base.NewBranch[int, string](4)
	parent.Keys = append(parent.Keys, 5)
	parent.Children = append(parent.Children, n, right)

	BorrowFromRight(n, right, parent, 0)

	assert.Equal(t, []int{1, 5}, n.Keys)
	assert.Equal(t, []int{6, 7}, right.Keys)
	// Separator re-copied from the right sibling's new first key.
	assert.Equal(t, []int{6}, parent.Keys)
}

func TestBorrowFromLeftBranch(t *testing.T) {
	t.Parallel()

	a, b, c, d, e := leafWithPairs(1), leafWithPairs(3), leafWithPairs(5), leafWithPairs(7), leafWithPairs(9)

	left := base.NewBranch[int, string](4)
	left.Keys = append(left.Keys, 3, 5)
	left.Children = append(left.Children, a, b, c)

	n := base.NewBranch[int, string](4)
	n.Keys = append(n.Keys, 9)
	n.Children = append(n.Children, d, e)

	parent := base.NewBranch[int, string](4)
	parent.Keys = append(parent.Keys, 7)
	parent.Children = append(parent.Children, left, n)

	BorrowFromLeft(n, left, parent, 0)

	// Rotation through the parent: separator 7 comes down, 5 goes up,
	// and c changes parents.
	assert.Equal(t, []int{3}, left.Keys)
	assert.Equal(t, []int{5}, parent.Keys)
	assert.Equal(t, []int{7, 9}, n.Keys)
	require.Len(t, n.Children, 3)
	assert.Same(t, c, n.Children[0])
	require.Len(t, left.Children, 2)
}

func TestBorrowFromRightBranch(t *testing.T) {
	t.Parallel()

	a, b, c, d, e := leafWithPairs(1), leafWithPairs(3), leafWithPairs(5), leafWithPairs(7), leafWithPairs(9)

	n := base.NewBranch[int, string](4)
	n.Keys = append(n.Keys, 3)
	n.Children = append(n.Children, a, b)

	right := base.NewBranch[int, string](4)
	right.Keys = append(right.Keys, 7, 9)
	right.Children = append(right.Children, c, d, e)

	parent := base.NewBranch[int, string](4)
	parent.Keys = append(parent.Keys, 5)
	parent.Children = append(parent.Children, n, right)

	BorrowFromRight(n, right, parent, 0)

	assert.Equal(t, []int{3, 5}, n.Keys)
	assert.Equal(t, []int{7}, parent.Keys)
	assert.Equal(t, []int{9}, right.Keys)
	require.Len(t, n.Children, 3)
	assert.Same(t, c, n.Children[2])
	require.Len(t, right.Children, 2)
}

func TestMergeLeaves(t *testing.T) {
	t.Parallel()

	left := leafWithPairs(1, 2)
	right := leafWithPairs(5, 6)
	after := leafWithPairs(9)
	left.Next = right
	right.Prev = left
	right.Next = after
	after.Prev = right

	parent := base.NewBranch[int, string](8)
	parent.Keys = append(parent.Keys, 5, 9)
	parent.Children = append(parent.Children, left, right, after)

	Merge(left, right, parent, 0)

	// Leaf separators are derivable routing copies; the merged leaf
	// does not absorb one.
	assert.Equal(t, []int{1, 2, 5, 6}, left.Keys)
	assert.Len(t, left.Values, 4)
	assert.Equal(t, []int{9}, parent.Keys)
	require.Len(t, parent.Children, 2)
	assert.Same(t, left, parent.Children[0])
	assert.Same(t, after, parent.Children[1])

	// The removed leaf is skipped by the chain.
	assert.Same(t, after, left.Next)
	assert.Same(t, left, after.Prev)
}

func TestMergeBranches(t *testing.T) {
	t.Parallel()

	a, b, c, d := leafWithPairs(1), leafWithPairs(3), leafWithPairs(5), leafWithPairs(7)

	left := base.NewBranch[int, string](8)
	left.Keys = append(left.Keys, 3)
	left.Children = append(left.Children, a, b)

	right := base.NewBranch[int, string](8)
	right.Keys = append(right.Keys, 7)
	right.Children = append(right.Children, c, d)

	parent := base.NewBranch[int, string](8)
	parent.Keys = append(parent.Keys, 5)
	parent.Children = append(parent.Children, left, right)

	Merge(left, right, parent, 0)

	// Branch merges pull the separator down.
	assert.Equal(t, []int{3, 5, 7}, left.Keys)
	require.Len(t, left.Children, 4)
	assert.Same(t, c, left.Children[2])
	assert.Empty(t, parent.Keys)
	require.Len(t, parent.Children, 1)
	assert.Same(t, left, parent.Children[0])
}

func TestApplyLeafMutations(t *testing.T) {
	t.Parallel()

	n := leafWithPairs(10, 30)

	ApplyLeafInsert(n, 1, 20, "twenty")
	assert.Equal(t, []int{10, 20, 30}, n.Keys)
	assert.Equal(t, "twenty", n.Values[1])

	ApplyLeafUpdate(n, 1, "updated")
	assert.Equal(t, "updated", n.Values[1])

	ApplyLeafDelete(n, 0)
	assert.Equal(t, []int{20, 30}, n.Keys)
	assert.Equal(t, "updated", n.Values[0])
}
