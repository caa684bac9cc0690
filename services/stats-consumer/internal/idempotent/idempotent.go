// Package idempotent tracks per-event processing state so an at-least-once
// broker yields at-most-once aggregation.
//
// States per correlation key: absent (unseen) -> claimed (in progress) ->
// done. The claim is an atomic SetNX, which is what closes the race between
// two overlapping deliveries of the same key. A failed event clears its
// record so the broker's redelivery can reprocess from scratch; a done
// record makes every later delivery a silent no-op until its TTL expires.
package idempotent

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "short-link:idempotent:"

	claimedValue = "0"
	doneValue    = "1"

	defaultClaimTTL = 2 * time.Minute
	defaultDoneTTL  = 24 * time.Hour
)

// Ledger is the consumer's view of the idempotency store.
type Ledger interface {
	// TryClaim atomically claims the key for processing. False means some
	// delivery of this key already claimed it (finished or still running).
	TryClaim(ctx context.Context, key string) (bool, error)
	// IsDone reports whether the key's event fully committed.
	IsDone(ctx context.Context, key string) (bool, error)
	// MarkDone transitions the key to its terminal state. Idempotent.
	MarkDone(ctx context.Context, key string) error
	// Clear removes the record so a redelivery can reprocess the event.
	Clear(ctx context.Context, key string) error
}

// Options tune the ledger TTLs. Zero values fall back to defaults.
type Options struct {
	// ClaimTTL bounds how long a crashed worker can block redeliveries of
	// its key.
	ClaimTTL time.Duration
	// DoneTTL bounds ledger growth; after it lapses a very late redelivery
	// would be reprocessed, so it should exceed the broker's retention.
	DoneTTL time.Duration
}

// RedisLedger implements Ledger on Redis.
type RedisLedger struct {
	rdb      redis.UniversalClient
	claimTTL time.Duration
	doneTTL  time.Duration
}

var _ Ledger = (*RedisLedger)(nil)

// NewRedisLedger creates a ledger on top of an existing Redis client.
func NewRedisLedger(rdb redis.UniversalClient, opts Options) *RedisLedger {
	if opts.ClaimTTL <= 0 {
		opts.ClaimTTL = defaultClaimTTL
	}
	if opts.DoneTTL <= 0 {
		opts.DoneTTL = defaultDoneTTL
	}
	return &RedisLedger{rdb: rdb, claimTTL: opts.ClaimTTL, doneTTL: opts.DoneTTL}
}

func (l *RedisLedger) TryClaim(ctx context.Context, key string) (bool, error) {
	return l.rdb.SetNX(ctx, keyPrefix+key, claimedValue, l.claimTTL).Result()
}

func (l *RedisLedger) IsDone(ctx context.Context, key string) (bool, error) {
	val, err := l.rdb.Get(ctx, keyPrefix+key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == doneValue, nil
}

func (l *RedisLedger) MarkDone(ctx context.Context, key string) error {
	return l.rdb.Set(ctx, keyPrefix+key, doneValue, l.doneTTL).Err()
}

func (l *RedisLedger) Clear(ctx context.Context, key string) error {
	return l.rdb.Del(ctx, keyPrefix+key).Err()
}
