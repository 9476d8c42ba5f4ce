package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flightbook/config"
	"flightbook/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a redis client from config.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

// RedisCache holds the flights list cache and admin session tokens.
type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
	sessionTTL time.Duration
}

func NewRedisCache(client *redis.Client, flightsTTL, sessionTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, flightsTTL: flightsTTL, sessionTTL: sessionTTL}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

// InvalidateFlights drops the cached list after any flight write.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey()).Err()
}

// IssueSession stores a fresh bearer token for an authenticated admin.
func (c *RedisCache) IssueSession(ctx context.Context, username string) (string, error) {
	token := uuid.NewString()
	if err := c.client.Set(ctx, sessionKey(token), username, c.sessionTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// CheckSession returns the username behind a token, or "" when the token is
// unknown or expired.
func (c *RedisCache) CheckSession(ctx context.Context, token string) (string, error) {
	username, err := c.client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return username, nil
}

func (c *RedisCache) RevokeSession(ctx context.Context, token string) error {
	return c.client.Del(ctx, sessionKey(token)).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:admin:%s", token)
}
