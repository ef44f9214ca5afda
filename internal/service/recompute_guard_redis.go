package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RecomputeGuard serializes match recomputation per user: the compute/save
// sequence is not transactional, so callers must not run two overlapping
// passes for the same user. The guard is the caller-side mechanism for that
// contract; the core service itself takes no locks.
type RecomputeGuard interface {
	// Acquire returns true when the caller may recompute for the user now.
	Acquire(ctx context.Context, userID uuid.UUID) (bool, error)
	Release(ctx context.Context, userID uuid.UUID) error
}

type redisRecomputeGuard struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisRecomputeGuard builds a SETNX-based per-user lock with a TTL so a
// crashed run cannot wedge a user forever.
func NewRedisRecomputeGuard(client *redis.Client, ttl time.Duration) RecomputeGuard {
	if client == nil {
		return noopRecomputeGuard{}
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisRecomputeGuard{
		client: client,
		ttl:    ttl,
		prefix: "match:recompute:",
	}
}

func (g *redisRecomputeGuard) Acquire(ctx context.Context, userID uuid.UUID) (bool, error) {
	return g.client.SetNX(ctx, g.prefix+userID.String(), 1, g.ttl).Result()
}

func (g *redisRecomputeGuard) Release(ctx context.Context, userID uuid.UUID) error {
	return g.client.Del(ctx, g.prefix+userID.String()).Err()
}

// noopRecomputeGuard is used when redis is not configured; single-instance
// deployments already serialize recomputation by construction.
type noopRecomputeGuard struct{}

func (noopRecomputeGuard) Acquire(context.Context, uuid.UUID) (bool, error) { return true, nil }
func (noopRecomputeGuard) Release(context.Context, uuid.UUID) error         { return nil }
