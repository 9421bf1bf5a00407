package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisTokenBlacklist struct {
	Client *redis.Client
}

// TokenBlacklist is the global instance. When nil (e.g. Redis not
// configured), blacklisting is disabled and no token is ever rejected.
var TokenBlacklist *RedisTokenBlacklist

// NewTokenBlacklist creates a new Redis-backed token blacklist
func NewTokenBlacklist(redisURL string) (*RedisTokenBlacklist, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisTokenBlacklist{Client: client}, nil
}

// BlacklistToken invalidates a token until its natural expiry.
func BlacklistToken(tokenString string) error {
	if TokenBlacklist == nil {
		return fmt.Errorf("token blacklist not initialized")
	}
	return TokenBlacklist.blacklistToken(tokenString)
}

func (tb *RedisTokenBlacklist) blacklistToken(tokenString string) error {
	claims, err := ParseToken(tokenString)

	expirationTime := time.Now().Add(24 * time.Hour)
	if err == nil && !claims.ExpiresAt.IsZero() {
		expirationTime = claims.ExpiresAt
	}

	// An already-expired token needs no blacklist entry
	ttl := time.Until(expirationTime)
	if ttl <= 0 {
		return nil
	}

	ctx := context.Background()
	key := fmt.Sprintf("blacklist:%s", tokenString)

	if err := tb.Client.Set(ctx, key, "true", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token in Redis: %w", err)
	}

	return nil
}

// IsTokenBlacklisted checks if a token is in the blacklist
func IsTokenBlacklisted(tokenString string) bool {
	if TokenBlacklist == nil {
		return false
	}

	ctx := context.Background()
	key := fmt.Sprintf("blacklist:%s", tokenString)

	exists, err := TokenBlacklist.Client.Exists(ctx, key).Result()
	if err != nil {
		fmt.Printf("Error checking token blacklist: %v\n", err)
		return false
	}

	return exists > 0
}

// Close closes the Redis connection
func (tb *RedisTokenBlacklist) Close() error {
	return tb.Client.Close()
}
