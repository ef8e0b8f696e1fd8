package bptree

import "errors"

var (
	// ErrInvalidOrder is returned by New when the requested branching
	// factor is below the structural minimum of 3.
	ErrInvalidOrder = errors.New("tree order must be at least 3")

	// ErrKeyNotFound is the explicit absent-result signal from Get.
	ErrKeyNotFound = errors.New("key not found")

	// ErrKeyExists is returned by Insert on a duplicate key when the
	// tree was built WithStrictInsert.
	ErrKeyExists = errors.New("key already exists")

	// ErrCorruption wraps every failure reported by Check. It always
	// indicates a bug in this package, never a caller error.
	ErrCorruption = errors.New("data corruption detected")

	ErrKeysUnsorted    = errors.New("keys must be inserted in strictly ascending order")
	ErrBulkLoaderEmpty = errors.New("bulk loader is empty")
)
