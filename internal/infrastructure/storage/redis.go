package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AbdulAhadaa/stayfinder-client/internal/core/domain"
)

const (
	defaultConnectTimeout = 5 * time.Second
	opTimeout             = 3 * time.Second
)

// RedisConfig captures the settings for establishing a Redis connection.
type RedisConfig struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a ping.
// A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// RedisStore keeps the session in Redis under namespaced keys, letting
// several processes share one signed-in session.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an established client. The prefix namespaces the
// session keys (e.g. one prefix per profile).
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "stayfinder"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) SaveSession(token string, user *domain.UserProfile) error {
	ctx, cancel := opContext()
	defer cancel()
	if err := s.client.Set(ctx, s.key(tokenKey), token, 0).Err(); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return s.saveUser(ctx, user)
}

func (s *RedisStore) SaveUser(user *domain.UserProfile) error {
	ctx, cancel := opContext()
	defer cancel()
	return s.saveUser(ctx, user)
}

func (s *RedisStore) Token() (string, bool) {
	ctx, cancel := opContext()
	defer cancel()
	val, err := s.client.Get(ctx, s.key(tokenKey)).Result()
	if err != nil || val == "" {
		return "", false
	}
	return val, true
}

func (s *RedisStore) User() (*domain.UserProfile, bool) {
	ctx, cancel := opContext()
	defer cancel()
	data, err := s.client.Get(ctx, s.key(userKey)).Bytes()
	if err != nil {
		return nil, false
	}
	var user domain.UserProfile
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, false
	}
	return &user, true
}

func (s *RedisStore) Clear() error {
	ctx, cancel := opContext()
	defer cancel()
	if err := s.client.Del(ctx, s.key(tokenKey), s.key(userKey)).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *RedisStore) saveUser(ctx context.Context, user *domain.UserProfile) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.client.Set(ctx, s.key(userKey), data, 0).Err(); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *RedisStore) key(name string) string {
	return s.prefix + ":" + name
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}
