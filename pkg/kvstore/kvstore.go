// Package kvstore provides a string-keyed blob store with read-entire,
// write-entire semantics, mirroring the browser localStorage contract the
// booking data model was designed around.
package kvstore

import "context"

// Store is a flat string key-value store. Get reports whether the key was
// present; an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
