package salary

import "context"

// Backend is the durable storage the store writes its whole state to.
// Load returns nil data and a nil error when nothing is stored under key.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Locker is implemented by backends shared between processes. While the lock
// on key is held no other store can mutate the state stored under it; the
// store reloads the stored state before applying each mutation.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}
