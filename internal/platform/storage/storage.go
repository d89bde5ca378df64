// Package storage holds the durable backends the salary store can persist its
// state blob to. Every backend stores opaque bytes under a key; Load returns
// nil data and a nil error when the key has never been written.
package storage

import "context"

type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Ping(ctx context.Context) error
	Close() error
}

// Locker is implemented by backends that several processes share. The lock
// guards one key until release is called.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}
