// Package redis persists sessions as JSON blobs in Redis, one key per
// user. An optional TTL lets deployments expire conversations that went
// quiet.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tventura/mibot/internal/domain"
)

const keyPrefix = "conversation:"

type Options struct {
	Addr     string
	Password string
	DB       int
	// TTL of zero keeps sessions forever.
	TTL time.Duration
}

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore connects to Redis and verifies the connection with a ping.
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &Store{client: client, ttl: opts.TTL}, nil
}

func sessionKey(userID domain.UserID) string {
	return keyPrefix + string(userID)
}

func (s *Store) Load(ctx context.Context, userID domain.UserID) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(userID)).Result()
	if err == redis.Nil {
		return domain.NewSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis Load: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("redis Load decode: %w", err)
	}
	return &sess, nil
}

func (s *Store) Save(ctx context.Context, userID domain.UserID, session *domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis Save encode: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(userID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis Save: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
