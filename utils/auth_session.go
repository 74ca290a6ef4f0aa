package utils

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// CacheTokenHash stores the hash of a freshly issued token so the auth
// middleware can verify requests without a database round trip.
func CacheTokenHash(ctx context.Context, userID, tokenHash string) error {
	client := GetAuthCacheClient()
	key := AuthCachePrefix + userID
	if err := client.Set(ctx, key, tokenHash, AuthCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache token hash: %w", err)
	}
	return nil
}

// GetCachedTokenHash returns the cached token hash, or "" on a cache miss.
func GetCachedTokenHash(ctx context.Context, userID string) (string, error) {
	client := GetAuthCacheClient()
	hash, err := client.Get(ctx, AuthCachePrefix+userID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token hash: %w", err)
	}
	return hash, nil
}

// InvalidateTokenHash drops the cached hash, forcing re-authentication.
func InvalidateTokenHash(ctx context.Context, userID string) error {
	client := GetAuthCacheClient()
	if err := client.Del(ctx, AuthCachePrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to invalidate token hash: %w", err)
	}
	return nil
}
