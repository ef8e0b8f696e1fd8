// Package algo contains algorithms used for traversing and editing a
// b+ tree.
package algo

import (
	"cmp"
	"sort"

	"bptree/internal/base"
)

const searchThreshold = 32

// FindChildIndex returns the index of the child pointer to follow for
// key. Keys equal to a separator descend right, into the child holding
// keys >= that separator.
func FindChildIndex[K cmp.Ordered, V any](n *base.Node[K, V], key K) int {
	if len(n.Keys) < searchThreshold {
		i := 0
		for i < len(n.Keys) && key >= n.Keys[i] {
			i++
		}
		return i
	}

	return sort.Search(len(n.Keys), func(i int) bool {
		return key < n.Keys[i]
	})
}

// FindKeyInLeaf returns the index of key in leaf, or -1 if not found.
func FindKeyInLeaf[K cmp.Ordered, V any](n *base.Node[K, V], key K) int {
	if len(n.Keys) < searchThreshold {
		for i := range n.Keys {
			if key == n.Keys[i] {
				return i
			}
			if key < n.Keys[i] {
				return -1
			}
		}
		return -1
	}

	idx := sort.Search(len(n.Keys), func(i int) bool {
		return n.Keys[i] >= key
	})
	if idx < len(n.Keys) && n.Keys[idx] == key {
		return idx
	}
	return -1
}

// FindInsertPosition returns the position to insert key in a leaf,
// which is also the position of the first key >= key.
func FindInsertPosition[K cmp.Ordered, V any](n *base.Node[K, V], key K) int {
	if len(n.Keys) < searchThreshold {
		pos := 0
		for pos < len(n.Keys) && key > n.Keys[pos] {
			pos++
		}
		return pos
	}

	return sort.Search(len(n.Keys), func(i int) bool {
		return key <= n.Keys[i]
	})
}

// InsertAt inserts value at index, shifting the tail right.
func InsertAt[T any](slice []T, index int, value T) []T {
	return append(slice[:index], append([]T{value}, slice[index:]...)...)
}

// RemoveAt removes the element at index.
func RemoveAt[T any](slice []T, index int) []T {
	return append(slice[:index], slice[index+1:]...)
}
