// Package store provides the key-value persistence layer behind the
// simulation and chat services. The contract mirrors the host KV hook the
// services are written against: whole values are read and written under
// opaque string keys, last writer wins, no versioning.
package store

import "context"

// Keys used by the services. Keys are process-wide; there is no
// per-user namespacing.
const (
	KeySimulations  = "audit-simulations"
	KeyChatMessages = "chat-messages"
)

// KV is the persistence boundary. Get returns the stored value and whether
// the key exists. Watch registers a callback invoked after every successful
// Set in this process; it is a local change notification, not a
// cross-process subscription.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Watch(fn func(key string))
}
