// Package lock provides a named read/write lock backed by Redis.
//
// The stats aggregator takes the read (shared) side so concurrent click
// events on the same link proceed in parallel; the group-rebind operation
// takes the write (exclusive) side and serializes against all in-flight
// increments. Both sides carry a lease TTL so a crashed holder cannot wedge
// the pipeline forever.
package lock

import (
	"context"
	"fmt"
	"time"

	"go-shortlink/common/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const gidUpdateKeyPrefix = "short-link:lock:update-gid:"

// GidUpdateKey returns the coordination lock name for a link's group binding.
// The consumer (read side) and the rebind operation (write side) must agree
// on this key.
func GidUpdateKey(fullShortURL string) string {
	return gidUpdateKeyPrefix + fullShortURL
}

// readLockScript increments the reader count unless a writer holds the lock.
// KEYS[1] readers counter, KEYS[2] writer key, ARGV[1] lease millis.
var readLockScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[2]) == 1 then
	return 0
end
redis.call("INCR", KEYS[1])
redis.call("PEXPIRE", KEYS[1], ARGV[1])
return 1
`)

// readUnlockScript decrements the reader count and removes the counter once
// the last reader leaves.
var readUnlockScript = redis.NewScript(`
local n = redis.call("DECR", KEYS[1])
if n <= 0 then
	redis.call("DEL", KEYS[1])
end
return n
`)

// writeLockScript acquires the writer key only when no readers and no other
// writer are present. ARGV[1] token, ARGV[2] lease millis.
var writeLockScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 or redis.call("EXISTS", KEYS[2]) == 1 then
	return 0
end
redis.call("SET", KEYS[2], ARGV[1], "PX", ARGV[2])
return 1
`)

// writeUnlockScript releases the writer key only for the holder's token.
var writeUnlockScript = redis.NewScript(`
if redis.call("GET", KEYS[2]) == ARGV[1] then
	return redis.call("DEL", KEYS[2])
end
return 0
`)

// RW is the shared/exclusive lock contract the pipeline codes against.
// Acquire calls poll until success or context deadline and return
// errs.ErrLockTimeout when the deadline wins.
type RW interface {
	RLock(ctx context.Context) error
	RUnlock(ctx context.Context) error
	Lock(ctx context.Context) error
	Unlock(ctx context.Context) error
}

// Factory hands out locks by name. Kept as an interface so consumer tests can
// substitute an in-memory implementation.
type Factory interface {
	ReadWrite(name string) RW
}

// Options tune lease and polling behavior. Zero values fall back to defaults.
type Options struct {
	LeaseTTL      time.Duration
	RetryInterval time.Duration
}

const (
	defaultLeaseTTL      = 30 * time.Second
	defaultRetryInterval = 50 * time.Millisecond
)

// RedisFactory builds Redis-backed read/write locks.
type RedisFactory struct {
	rdb  redis.UniversalClient
	opts Options
}

var _ Factory = (*RedisFactory)(nil)

// NewRedisFactory creates a lock factory on top of an existing Redis client.
func NewRedisFactory(rdb redis.UniversalClient, opts Options) *RedisFactory {
	if opts.LeaseTTL <= 0 {
		opts.LeaseTTL = defaultLeaseTTL
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = defaultRetryInterval
	}
	return &RedisFactory{rdb: rdb, opts: opts}
}

// ReadWrite returns the lock for the given name. Locks with the same name
// share state across processes; the returned value itself is not reusable
// across goroutines while held on the write side (it carries the owner token).
func (f *RedisFactory) ReadWrite(name string) RW {
	return &redisRW{
		rdb:        f.rdb,
		readersKey: name + ":r",
		writerKey:  name + ":w",
		token:      uuid.NewString(),
		opts:       f.opts,
	}
}

type redisRW struct {
	rdb        redis.UniversalClient
	readersKey string
	writerKey  string
	token      string
	opts       Options
}

// RLock acquires the shared side, blocking while a writer holds the lock.
func (l *redisRW) RLock(ctx context.Context) error {
	return l.acquire(ctx, func(ctx context.Context) (bool, error) {
		n, err := readLockScript.Run(ctx, l.rdb,
			[]string{l.readersKey, l.writerKey},
			l.opts.LeaseTTL.Milliseconds()).Int()
		if err != nil {
			return false, err
		}
		return n == 1, nil
	})
}

// RUnlock releases one shared holder.
func (l *redisRW) RUnlock(ctx context.Context) error {
	return readUnlockScript.Run(ctx, l.rdb,
		[]string{l.readersKey, l.writerKey}).Err()
}

// Lock acquires the exclusive side, blocking while readers or another writer
// hold the lock.
func (l *redisRW) Lock(ctx context.Context) error {
	return l.acquire(ctx, func(ctx context.Context) (bool, error) {
		n, err := writeLockScript.Run(ctx, l.rdb,
			[]string{l.readersKey, l.writerKey},
			l.token, l.opts.LeaseTTL.Milliseconds()).Int()
		if err != nil {
			return false, err
		}
		return n == 1, nil
	})
}

// Unlock releases the exclusive side. Only the acquiring lock value's token
// can release it; a lease that already expired is a no-op.
func (l *redisRW) Unlock(ctx context.Context) error {
	return writeUnlockScript.Run(ctx, l.rdb,
		[]string{l.readersKey, l.writerKey}, l.token).Err()
}

// acquire polls try until it succeeds or ctx expires.
func (l *redisRW) acquire(ctx context.Context, try func(context.Context) (bool, error)) error {
	for {
		ok, err := try(ctx)
		if err != nil {
			return fmt.Errorf("lock acquire: %w", err)
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %s", errs.ErrLockTimeout, l.writerKey)
		case <-time.After(l.opts.RetryInterval):
		}
	}
}
