// Package session defines the session-scoped key-value store the order
// list lives in. Backends live in the memory, redis and postgres
// subpackages.
package session

import (
	"context"
	"errors"
)

// Store is a string key-value store. A missing key is reported with
// ok=false and a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// ErrNoSession indicates an empty session id was used to scope a store.
var ErrNoSession = errors.New("session id is empty")

// KeyPrefix is prepended to every namespaced key.
const KeyPrefix = "session:"

// Namespace scopes every key of s under the given session id.
func Namespace(s Store, sessionID string) (Store, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	return &namespaced{inner: s, prefix: KeyPrefix + sessionID + ":"}, nil
}

type namespaced struct {
	inner  Store
	prefix string
}

func (n *namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}
