package keyvalue

import (
	"context"
	"errors"
)

var ErrKeyDoesNotExist = errors.New("key does not exist")

// Store is the persistence capability the reminder store flushes its state to.
// Values are opaque JSON documents keyed by a fixed identifier.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}
