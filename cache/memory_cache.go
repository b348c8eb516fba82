// -----------------------------------------------------------------------------
// Memory Cache Driver
// -----------------------------------------------------------------------------
// In-memory cache implementation (non-persistent).
//
// Test ve development ortamları için idealdir; restart'ta kaybolur ve
// tek sunucuyla sınırlıdır. Expired entry'ler okuma sırasında atlanır,
// yazma sırasında fırsatçı olarak temizlenir — arka plan goroutine'i yoktur,
// kütüphane kullanıcıya görünmez iş başlatmaz.
// -----------------------------------------------------------------------------

package cache

import (
	"sync"
	"time"
)

// memoryEntry, memory'de saklanan veri yapısı.
type memoryEntry struct {
	value     interface{}
	expiresAt time.Time // zero value = süresiz
}

func (e *memoryEntry) expired() bool {
	if e.expiresAt.IsZero() {
		return false
	}
	return time.Now().After(e.expiresAt)
}

// MemoryCache, in-memory cache implementation.
type MemoryCache struct {
	store map[string]*memoryEntry
	mu    sync.RWMutex
}

// NewMemoryCache, yeni bir Memory cache instance oluşturur.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		store: make(map[string]*memoryEntry),
	}
}

// Get, cache'den veri okur.
func (m *MemoryCache) Get(key string) (interface{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.store[key]
	if !exists || entry.expired() {
		return nil, nil // cache miss
	}

	return entry.value, nil
}

// Set, cache'e veri yazar ve fırsatçı olarak expired entry'leri temizler.
func (m *MemoryCache) Set(key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, entry := range m.store {
		if entry.expired() {
			delete(m.store, k)
		}
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	m.store[key] = &memoryEntry{
		value:     value,
		expiresAt: expiresAt,
	}

	return nil
}

// Delete, cache'den veri siler.
func (m *MemoryCache) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.store, key)
	return nil
}

// Has, key'in varlığını kontrol eder.
func (m *MemoryCache) Has(key string) (bool, error) {
	val, err := m.Get(key)
	if err != nil {
		return false, err
	}
	return val != nil, nil
}

// Remember, cache'den okur veya callback'i çalıştırıp cache'ler.
func (m *MemoryCache) Remember(key string, ttl time.Duration, callback func() (interface{}, error)) (interface{}, error) {
	val, err := m.Get(key)
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

	if err := m.Set(key, result, ttl); err != nil {
		return nil, err
	}

	return result, nil
}

// Flush, tüm cache'i temizler.
func (m *MemoryCache) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]*memoryEntry)
	return nil
}

// Size, cache'deki toplam entry sayısını döndürür.
func (m *MemoryCache) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.store)
}

// Stats, memory cache istatistiklerini döndürür.
func (m *MemoryCache) Stats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	validCount := 0
	for _, entry := range m.store {
		if !entry.expired() {
			validCount++
		}
	}

	return map[string]interface{}{
		"driver":       "memory",
		"total_keys":   len(m.store),
		"valid_keys":   validCount,
		"expired_keys": len(m.store) - validCount,
	}
}
