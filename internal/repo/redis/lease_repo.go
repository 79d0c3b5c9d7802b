package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// LeaseRepo implements a single-flight lease on top of Redis SETNX. The
// matcher takes the lease at run start so overlapping ticks never read the
// same pending requests twice; the TTL bounds how long a crashed holder can
// block the next run.
type LeaseRepo struct {
	client *goredis.Client
}

func NewLeaseRepo(client *goredis.Client) *LeaseRepo {
	return &LeaseRepo{client: client}
}

// releaseScript deletes the lease only when the caller still owns it, so a
// slow run cannot release a lease that already expired and was re-acquired.
var releaseScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (r *LeaseRepo) Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	if key == "" || owner == "" || ttl <= 0 {
		return false, fmt.Errorf("invalid lease payload")
	}

	ok, err := r.client.SetNX(ctx, key, owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lease: %w", err)
	}

	return ok, nil
}

func (r *LeaseRepo) Release(ctx context.Context, key, owner string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if key == "" || owner == "" {
		return fmt.Errorf("invalid lease payload")
	}

	if err := releaseScript.Run(ctx, r.client, []string{key}, owner).Err(); err != nil && err != goredis.Nil {
		return fmt.Errorf("release lease: %w", err)
	}

	return nil
}
