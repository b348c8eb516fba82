// -----------------------------------------------------------------------------
// Redis Cache Driver
// -----------------------------------------------------------------------------
// Redis-based cache implementation.
//
// Production ortamı için önerilen driver: distributed caching, persistence
// ve atomic operasyonlar destekler. Değerler JSON encode edilerek saklanır;
// bu yüzden Get'ten dönen satır listeleri []interface{} içinde
// map[string]interface{} olarak gelir.
// -----------------------------------------------------------------------------

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache, Redis-based cache implementation.
type RedisCache struct {
	client *redis.Client
	logger *log.Logger
	prefix string // key namespace'i
}

// NewRedisCache, yeni bir Redis cache instance oluşturur.
//
//	cache := NewRedisCache(redisClient, logger, "fluentsql:")
//	cache.Set("events:upcoming", rows, 10*time.Minute)
//	// Gerçek key: "fluentsql:events:upcoming"
func NewRedisCache(client *redis.Client, logger *log.Logger, prefix string) *RedisCache {
	return &RedisCache{
		client: client,
		logger: logger,
		prefix: prefix,
	}
}

// prefixKey, key'e prefix ekler.
func (r *RedisCache) prefixKey(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + key
}

// Get, cache'den veri okur.
func (r *RedisCache) Get(key string) (interface{}, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	prefixedKey := r.prefixKey(key)
	val, err := r.client.Get(ctx, prefixedKey).Result()

	// Key bulunamadı (cache miss)
	if err == redis.Nil {
		return nil, nil
	}

	if err != nil {
		r.logger.Printf("❌ Redis Get hatası [%s]: %v", prefixedKey, err)
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var result interface{}
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		r.logger.Printf("❌ JSON decode hatası [%s]: %v", prefixedKey, err)
		return nil, fmt.Errorf("json decode failed: %w", err)
	}

	return result, nil
}

// Set, cache'e veri yazar.
func (r *RedisCache) Set(key string, value interface{}, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Printf("❌ JSON encode hatası [%s]: %v", key, err)
		return fmt.Errorf("json encode failed: %w", err)
	}

	prefixedKey := r.prefixKey(key)

	if err := r.client.Set(ctx, prefixedKey, data, ttl).Err(); err != nil {
		r.logger.Printf("❌ Redis Set hatası [%s]: %v", prefixedKey, err)
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// Delete, cache'den veri siler.
func (r *RedisCache) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	prefixedKey := r.prefixKey(key)
	if err := r.client.Del(ctx, prefixedKey).Err(); err != nil {
		r.logger.Printf("❌ Redis Delete hatası [%s]: %v", prefixedKey, err)
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}

// Has, key'in varlığını kontrol eder.
func (r *RedisCache) Has(key string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	prefixedKey := r.prefixKey(key)
	count, err := r.client.Exists(ctx, prefixedKey).Result()
	if err != nil {
		r.logger.Printf("❌ Redis Exists hatası [%s]: %v", prefixedKey, err)
		return false, fmt.Errorf("redis exists failed: %w", err)
	}

	return count > 0, nil
}

// Remember, cache'den okur veya callback'i çalıştırıp cache'ler.
func (r *RedisCache) Remember(key string, ttl time.Duration, callback func() (interface{}, error)) (interface{}, error) {
	val, err := r.Get(key)
	if err != nil {
		return nil, err
	}

	if val != nil {
		return val, nil // cache hit
	}

	result, err := callback()
	if err != nil {
		return nil, err
	}

	if err := r.Set(key, result, ttl); err != nil {
		// Cache yazma hatası sonucu geçersiz kılmaz.
		r.logger.Printf("⚠️  Remember cache yazma hatası [%s]: %v", key, err)
	}

	return result, nil
}

// Flush, tüm cache'i temizler.
//
// UYARI: Prefix varsa sadece o namespace temizlenir.
// Prefix yoksa TÜM Redis database temizlenir!
func (r *RedisCache) Flush() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if r.prefix != "" {
		pattern := r.prefix + "*"
		iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()

		keys := []string{}
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}

		if err := iter.Err(); err != nil {
			r.logger.Printf("❌ Redis Scan hatası: %v", err)
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				r.logger.Printf("❌ Redis Flush hatası: %v", err)
				return fmt.Errorf("redis flush failed: %w", err)
			}
		}

		r.logger.Printf("⚠️  Redis cache temizlendi [prefix: %s, keys: %d]", r.prefix, len(keys))
		return nil
	}

	if err := r.client.FlushDB(ctx).Err(); err != nil {
		r.logger.Printf("❌ Redis FlushDB hatası: %v", err)
		return fmt.Errorf("redis flushdb failed: %w", err)
	}

	r.logger.Println("⚠️  Redis database tamamen temizlendi (FlushDB)")
	return nil
}

// Stats, Redis cache istatistiklerini döndürür.
func (r *RedisCache) Stats() map[string]interface{} {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	info, err := r.client.Info(ctx, "stats").Result()
	if err != nil {
		r.logger.Printf("❌ Redis Info hatası: %v", err)
		return map[string]interface{}{
			"error": err.Error(),
		}
	}

	return map[string]interface{}{
		"driver": "redis",
		"prefix": r.prefix,
		"info":   info,
	}
}
