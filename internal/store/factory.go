package store

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Stores struct {
	pool           *pgxpool.Pool
	rdb            *redis.Client
	mentorCacheTTL time.Duration
}

// NewStores wires the pgx-backed stores. rdb may be nil, in which case the
// mentor-list cache is skipped.
func NewStores(pool *pgxpool.Pool, rdb *redis.Client, mentorCacheTTL time.Duration) *Stores {
	return &Stores{pool: pool, rdb: rdb, mentorCacheTTL: mentorCacheTTL}
}

func (s *Stores) Feedbacks() FeedbackStore {
	return newFeedbackStore(s.pool)
}

func (s *Stores) Users() UserStore {
	users := newUserStore(s.pool)
	if s.rdb == nil {
		return users
	}
	return NewCachedUserStore(users, s.rdb, s.mentorCacheTTL)
}
