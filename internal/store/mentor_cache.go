package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mortyverse/Geurim-Lab/internal/model"
)

const mentorCacheKey = "geurim:mentors:verified"

// cachedUserStore fronts ListVerifiedMentors with redis. The mentor roster
// changes rarely while every session-creation page reads it, so a short TTL
// is enough; cache faults fall through to Postgres.
type cachedUserStore struct {
	UserStore
	rdb *redis.Client
	ttl time.Duration
}

// NewCachedUserStore wraps inner with a redis-backed mentor-list cache.
func NewCachedUserStore(inner UserStore, rdb *redis.Client, ttl time.Duration) UserStore {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &cachedUserStore{UserStore: inner, rdb: rdb, ttl: ttl}
}

func (s *cachedUserStore) ListVerifiedMentors(ctx context.Context) ([]model.MentorSummary, error) {
	if data, err := s.rdb.Get(ctx, mentorCacheKey).Bytes(); err == nil {
		var mentors []model.MentorSummary
		if err := json.Unmarshal(data, &mentors); err == nil {
			return mentors, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		slog.WarnContext(ctx, "mentor cache read failed", "error", err)
	}

	mentors, err := s.UserStore.ListVerifiedMentors(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(mentors); err == nil {
		if err := s.rdb.Set(ctx, mentorCacheKey, data, s.ttl).Err(); err != nil {
			slog.WarnContext(ctx, "mentor cache write failed", "error", err)
		}
	}
	return mentors, nil
}
