package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"StockSight/internal/domain/models"
	"StockSight/internal/domain/repository"
	"StockSight/pkg/cache"
)

const sessionKeyPrefix = "session"

// CacheSessionStore keeps sessions as JSON strings in a cache.Service with a
// sliding TTL: every Save pushes expiry forward.
type CacheSessionStore struct {
	cache cache.Service
	ttl   time.Duration
}

// NewCacheSessionStore creates a session store on top of c.
func NewCacheSessionStore(c cache.Service, ttl time.Duration) repository.SessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &CacheSessionStore{cache: c, ttl: ttl}
}

func (s *CacheSessionStore) Load(ctx context.Context, id string) (*models.Session, error) {
	sess, err := cache.GetJSON[models.Session](ctx, s.cache, cache.GenerateKey(sessionKeyPrefix, id))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return models.NewSession(id), nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	sess.ID = id
	return &sess, nil
}

func (s *CacheSessionStore) Save(ctx context.Context, sess *models.Session) error {
	if err := s.cache.Set(ctx, cache.GenerateKey(sessionKeyPrefix, sess.ID), sess, s.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *CacheSessionStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, cache.GenerateKey(sessionKeyPrefix, id))
}
