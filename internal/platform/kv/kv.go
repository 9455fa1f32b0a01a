// Package kv is the durable string-keyed store every module persists
// through. Values are JSON documents.
package kv

import "context"

type Store interface {
	// Get decodes the value stored under key into dst. It reports false,
	// leaving dst untouched, when the key is absent.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
}
