package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"log/slog"
	"voting-service/internal/database"
	"voting-service/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	resultsCacheKey  = "results:board"
	revokedKeyPrefix = "auth:revoked:"
)

type RedisService struct {
	client *database.RedisClient
}

func NewRedisService(client *database.RedisClient) *RedisService {
	return &RedisService{
		client: client,
	}
}

// =============================================================================
// Rate Limiting
// =============================================================================

// CheckRateLimit records a hit on key and reports whether fewer than limit
// hits happened during the sliding window.
func (r *RedisService) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	windowStart := now.Add(-window).UnixNano()

	pipe := r.client.GetClient().Pipeline()

	// Remove old entries
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))

	// Count current entries
	pipe.ZCard(ctx, key)

	// Add current request
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})

	// Set expiration
	pipe.Expire(ctx, key, window)

	results, err := pipe.Exec(ctx)
	if err != nil {
		return false, err
	}

	count := results[1].(*redis.IntCmd).Val()

	return count < int64(limit), nil
}

// =============================================================================
// Results Cache
// =============================================================================

func (r *RedisService) GetResults(ctx context.Context) ([]models.CandidateResult, bool, error) {
	var results []models.CandidateResult
	if err := r.Get(ctx, resultsCacheKey, &results); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return results, true, nil
}

func (r *RedisService) SetResults(ctx context.Context, results []models.CandidateResult, ttl time.Duration) error {
	return r.Set(ctx, resultsCacheKey, results, ttl)
}

func (r *RedisService) InvalidateResults(ctx context.Context) error {
	if err := r.Delete(ctx, resultsCacheKey); err != nil {
		slog.Error("Failed to invalidate results cache", "error", err)
		return err
	}
	slog.Debug("Results cache invalidated")
	return nil
}

// =============================================================================
// Token Revocation
// =============================================================================

// RevokeToken blacklists a token id until the token would expire anyway.
func (r *RedisService) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.GetClient().Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err()
}

func (r *RedisService) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.GetClient().Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// =============================================================================
// Cache Operations
// =============================================================================

func (r *RedisService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return r.client.GetClient().Set(ctx, key, data, expiration).Err()
}

func (r *RedisService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.GetClient().Get(ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), dest)
}

func (r *RedisService) Delete(ctx context.Context, keys ...string) error {
	return r.client.GetClient().Del(ctx, keys...).Err()
}
