package kvstore

import "context"

// Store is a string-keyed value store with browser-storage semantics: writes
// are synchronous and immediately visible to subsequent reads through the
// same handle, and a missing key is a miss, not an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Watcher is implemented by stores that can signal writes to interested
// observers, the equivalent of the cross-context storage-change event.
// Delivery is best effort and may include the observer's own writes;
// observers are expected to re-read the store rather than trust the signal.
type Watcher interface {
	Watch(fn func(key string))
}
