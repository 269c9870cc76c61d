package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Cache provides typed caching utilities
// ⭐ SSOT: 캐시 헬퍼는 여기서만
type Cache struct {
	client *Client
	prefix string
}

// NewCache creates a new cache helper
func NewCache(client *Client, prefix string) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
	}
}

// Get retrieves a cached value
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.client.Enabled() {
		return false, nil
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	data, err := c.client.Redis().Get(ctx, fullKey).Bytes()
	if err != nil {
		// Key not found is not an error
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed: %w", err)
	}

	return true, nil
}

// Set stores a value in cache with TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.client.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	return c.client.Redis().Set(ctx, fullKey, data, ttl).Err()
}

// Delete removes a cached value
func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.client.Enabled() {
		return nil
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	return c.client.Redis().Del(ctx, fullKey).Err()
}

// DeleteByPattern removes every cached key matching the glob pattern.
// Returns the number of keys deleted. Uses SCAN, never KEYS.
func (c *Cache) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	if !c.client.Enabled() {
		return 0, nil
	}

	fullPattern := fmt.Sprintf("%s:cache:%s", c.prefix, pattern)
	rdb := c.client.Redis()

	deleted := 0
	iter := rdb.Scan(ctx, 0, fullPattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, iter.Err()
}

// Predefined TTLs
const (
	TTLShort     = 10 * time.Minute   // 트랜짓 스냅샷
	TTLDaily     = 24 * time.Hour     // 일별 판창가
	TTLImmutable = 7 * 24 * time.Hour // 출생차트 분석 (차트가 같으면 결과 불변)
)

// Common cache key generators

// PanchangaKey keys the daily panchanga for a calendar date
func PanchangaKey(date string) string {
	return fmt.Sprintf("panchanga:%s", date)
}

// TabulationKey keys a benefic tabulation by natal moment and location.
// The tabulation is pure in its inputs, so the key fully determines the value.
func TabulationKey(julianDay float64, lat, lon float64) string {
	return fmt.Sprintf("benefic:%.6f:%.4f:%.4f", julianDay, lat, lon)
}

// TransitKey keys a transit report by day and profile
func TransitKey(date string, profileID string) string {
	return fmt.Sprintf("transit:%s:%s", date, profileID)
}
