package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bioprephq/bioprep/internal/domain"
)

// SessionStore persists the logged-in user object for the lifetime of its
// token. Absence of a key means "logged out".
type SessionStore interface {
	Put(ctx context.Context, key string, u domain.User, ttl time.Duration) error
	Get(ctx context.Context, key string) (*domain.User, error)
	Delete(ctx context.Context, key string) error
}

// RedisStore keeps sessions as JSON under {prefix}:session:{key}.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

func NewRedisStore(r redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{redis: r, prefix: prefix}
}

func (s *RedisStore) key(key string) string {
	return fmt.Sprintf("%s:session:%s", s.prefix, key)
}

func (s *RedisStore) Put(ctx context.Context, key string, u domain.User, ttl time.Duration) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}

	if err := s.redis.Set(ctx, s.key(key), b, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (*domain.User, error) {
	b, err := s.redis.Get(ctx, s.key(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var u domain.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, fmt.Errorf("unmarshal session user: %w", err)
	}
	return &u, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.redis.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// MemoryStore is the in-process fallback when no Redis is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	now      func() time.Time
}

type memorySession struct {
	user      domain.User
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, key string, u domain.User, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[key] = memorySession{
		user:      u,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (*domain.User, error) {
	s.mu.RLock()
	sess, ok := s.sessions[key]
	s.mu.RUnlock()

	if !ok || s.now().After(sess.expiresAt) {
		return nil, nil
	}

	u := sess.user
	return &u, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, key)
	return nil
}
