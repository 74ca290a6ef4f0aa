// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"voyago/config"
)

var (
	// WizardCacheClient holds in-flight booking wizard sessions.
	WizardCacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching
	// and multi-step registration sessions.
	AuthCacheClient *redis.Client
	// OTPCacheClient holds short-lived one-time passcodes.
	OTPCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

func mustPing(client *redis.Client, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
}

// InitRedis initializes every Redis client the platform uses.
func InitRedis() {
	WizardCacheClient = newRedisClient(config.AppConfig.RedisWizardDB)
	mustPing(WizardCacheClient, "Wizard")
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
	mustPing(AuthCacheClient, "Auth")
	OTPCacheClient = newRedisClient(config.AppConfig.RedisOTPDB)
	mustPing(OTPCacheClient, "OTP")
}

// GetWizardCacheClient returns the client backing wizard sessions.
func GetWizardCacheClient() *redis.Client {
	if WizardCacheClient == nil {
		WizardCacheClient = newRedisClient(config.AppConfig.RedisWizardDB)
		mustPing(WizardCacheClient, "Wizard")
	}
	return WizardCacheClient
}

// GetAuthCacheClient returns the client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
		mustPing(AuthCacheClient, "Auth")
	}
	return AuthCacheClient
}

// GetOTPCacheClient returns the client for OTP storage.
func GetOTPCacheClient() *redis.Client {
	if OTPCacheClient == nil {
		OTPCacheClient = newRedisClient(config.AppConfig.RedisOTPDB)
		mustPing(OTPCacheClient, "OTP")
	}
	return OTPCacheClient
}
