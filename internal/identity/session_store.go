package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"participation-tracker/internal/biddingerrors"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=session_store.go -destination=mock_session_store.go -package=identity

const sessionKeyPrefix = "session:"

// SessionStore maps session tokens to user IDs
type SessionStore interface {
	UserForSession(ctx context.Context, token string) (string, error)
}

// RedisSessionStore reads sessions written by the identity provider as
// "session:<token>" -> user ID string keys.
type RedisSessionStore struct {
	Client *redis.Client
}

// Compile-time interface check.
var _ SessionStore = (*RedisSessionStore)(nil)

// NewRedisClient creates a client and pings the server
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// NewRedisSessionStore creates a RedisSessionStore
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client}
}

// UserForSession returns the user ID stored for token
func (s *RedisSessionStore) UserForSession(ctx context.Context, token string) (string, error) {
	userID, err := s.Client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", biddingerrors.ErrSessionNotFound
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("failed to get session from redis: %w", ctxErr)
		}
		return "", fmt.Errorf("failed to get session from redis: %w: %w", biddingerrors.ErrStoreUnavailable, err)
	}
	return userID, nil
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}
