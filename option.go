package bptree

// options configures tree behavior.
type options struct {
	logger       Logger
	strictInsert bool
	cacheSize    int
}

func defaultOptions() options {
	return options{
		logger: DiscardLogger{},
	}
}

// Option configures a tree using the functional options pattern.
type Option func(*options)

// WithLogger routes structural event logging (height changes, failed
// invariant checks) to the given logger. The default discards all
// output.
func WithLogger(l Logger) Option {
	return func(opts *options) {
		opts.logger = l
	}
}

// WithStrictInsert makes Insert of an existing key fail with
// ErrKeyExists instead of overwriting the stored value in place.
func WithStrictInsert() Option {
	return func(opts *options) {
		opts.strictInsert = true
	}
}

// WithLookupCache enables an LRU cache over point lookups with
// capacity for the given number of entries. Get consults the cache
// before descending the tree; Insert and Delete keep it coherent.
// Sizes below MinCacheSize are raised to it.
func WithLookupCache(size int) Option {
	return func(opts *options) {
		opts.cacheSize = size
	}
}
