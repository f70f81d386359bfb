package bits

import (
	"context"

	"github.com/go-redis/redis/v9"
	"github.com/google/uuid"
)

// Redis is a Store mapped onto a Redis string. Bit i of the store is bit i of
// the value at Key, using Redis's SETBIT indexing.
//
// The zero value is not usable; construct with NewRedis. Every operation goes
// to the server, so a filter on this backend pays one round trip per touched
// cell. That is the intended trade-off: the filter state survives the process
// and can be shared between processes.
//
// Errors from the server are swallowed by the boolean accessors (a missing
// key reads as all-zero, which is also the correct empty-filter state); use
// Err to check connectivity when constructing a filter on this backend.
type Redis struct {
	client redis.UniversalClient
	key    string
	len    uint
}

// NewRedis creates a redis-backed store of the given length at key. An empty
// key is replaced with a generated UUID so that independent filters never
// collide on the default.
func NewRedis(client redis.UniversalClient, key string, length uint) *Redis {
	if key == "" {
		key = "bf:" + uuid.NewString()
	}
	return &Redis{client: client, key: key, len: length}
}

// Key returns the Redis key holding the bits.
func (r *Redis) Key() string {
	return r.key
}

// Err pings the server and returns the connection error, if any.
func (r *Redis) Err(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Len returns the number of bits in the store.
func (r *Redis) Len() uint {
	return r.len
}

// Test reports whether bit i is set.
func (r *Redis) Test(i uint) bool {
	return r.client.GetBit(context.Background(), r.key, int64(i)).Val() == 1
}

// Set sets bit i to 1.
func (r *Redis) Set(i uint) {
	r.client.SetBit(context.Background(), r.key, int64(i), 1)
}

// Reset sets bit i to 0.
func (r *Redis) Reset(i uint) {
	r.client.SetBit(context.Background(), r.key, int64(i), 0)
}

// ClearAll deletes the backing key; a missing key reads as all-zero.
func (r *Redis) ClearAll() {
	r.client.Del(context.Background(), r.key)
}

// Count returns the number of set bits via BITCOUNT.
func (r *Redis) Count() uint {
	return uint(r.client.BitCount(context.Background(), r.key, nil).Val())
}

// Resize grows the store; Redis strings zero-extend on the first SETBIT
// past the old length, so only the bound changes.
func (r *Redis) Resize(length uint) {
	if length > r.len {
		r.len = length
	}
}

// UnionWith ORs another redis-backed store of equal length into the receiver
// via BITOP OR. Both stores must live on the same server.
func (r *Redis) UnionWith(other Store) error {
	o, ok := other.(*Redis)
	if !ok {
		return ErrBackendMismatch
	}
	if r.len != o.len {
		return ErrSizeMismatch
	}
	return r.client.BitOpOr(context.Background(), r.key, r.key, o.key).Err()
}
