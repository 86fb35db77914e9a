package revocations

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// A revoked token is stored under its token ID with a TTL equal to the time
// the token had left to live, so the store never outgrows the set of tokens
// that could still be replayed.

const keyPrefix = "revoked:"

// RedisStore shares revocations across instances.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, keyPrefix+tokenID, 1, ttl).Err()
}

func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// MemoryStore is the single-process fallback when no redis address is
// configured. Not durable and not shared across instances.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemory() *MemoryStore {
	s := &MemoryStore{entries: make(map[string]time.Time)}
	go func() {
		for {
			time.Sleep(5 * time.Minute)
			s.mu.Lock()
			for id, expiresAt := range s.entries {
				if time.Now().After(expiresAt) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}()
	return s
}

func (s *MemoryStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	s.entries[tokenID] = time.Now().Add(ttl)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	expiresAt, ok := s.entries[tokenID]
	s.mu.Unlock()
	return ok && time.Now().Before(expiresAt), nil
}
