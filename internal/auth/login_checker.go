package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	now         func() time.Time
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
		now:         time.Now,
	}
}

// UserID resolves a bearer token to the id of the logged in user.
// Unknown, logged out and expired tokens all give ErrSessionNotFound.
func (c *LoginChecker) UserID(ctx context.Context, token string) (string, error) {
	raw, err := c.redisClient.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("get session: %w", err)
	}

	userID, createdAt, err := decodeSession(raw)
	if err != nil {
		return "", err
	}

	if c.now().Sub(createdAt) > c.ttl {
		return "", ErrSessionNotFound
	}
	return userID, nil
}
