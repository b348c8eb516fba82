// -----------------------------------------------------------------------------
// File Cache Driver
// -----------------------------------------------------------------------------
// Sorgu sonuçlarını diskte JSON dosyaları olarak saklar. Process restart'ları
// arasında cache'in yaşaması gereken CLI araçları için uygundur.
//
// Key'ler md5 hash'lenerek dosya adına çevrilir; hash'in ilk iki karakteri
// alt dizin olarak kullanılır ki tek dizinde binlerce dosya birikmesin.
// Expired dosyalar okuma anında silinir; arka planda GC goroutine'i yoktur.
// -----------------------------------------------------------------------------

package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// fileEntry, diskteki tek bir cache kaydının JSON şeması.
type fileEntry struct {
	Value     interface{} `json:"value"`
	ExpiresAt int64       `json:"expires_at"`
}

// FileCache, Cache interface'inin dosya tabanlı implementasyonu.
type FileCache struct {
	dir    string
	logger *log.Logger
	mu     sync.RWMutex
}

// NewFileCache, verilen dizinde yeni bir file cache oluşturur.
// Dizin yoksa oluşturulur.
func NewFileCache(dir string, logger *log.Logger) (*FileCache, error) {
	if logger == nil {
		logger = log.Default()
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Printf("❌ Cache dizini oluşturma hatası [%s]: %v", dir, err)
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &FileCache{dir: dir, logger: logger}, nil
}

// filePath, key'den güvenli dosya yolu türetir.
func (f *FileCache) filePath(key string) string {
	hash := md5.Sum([]byte(key))
	hashStr := hex.EncodeToString(hash[:])
	return filepath.Join(f.dir, hashStr[:2], hashStr)
}

// Get, cache'den veri okur. Key bulunamazsa veya expire olmuşsa (nil, nil)
// döner; expired ve corrupt dosyalar okuma sırasında silinir.
func (f *FileCache) Get(key string) (interface{}, error) {
	path := f.filePath(key)

	f.mu.RLock()
	data, err := os.ReadFile(path)
	f.mu.RUnlock()

	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		f.logger.Printf("❌ File cache okuma hatası [%s]: %v", key, err)
		return nil, fmt.Errorf("file cache read failed: %w", err)
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		f.logger.Printf("❌ JSON decode hatası [%s]: %v", key, err)
		f.remove(path)
		return nil, nil
	}

	if entry.ExpiresAt > 0 && time.Now().Unix() > entry.ExpiresAt {
		f.remove(path)
		return nil, nil
	}

	return entry.Value, nil
}

// Set, cache'e veri yazar. ttl = 0 süresiz saklar.
func (f *FileCache) Set(key string, value interface{}, ttl time.Duration) error {
	var expiresAt int64
	if ttl != 0 {
		expiresAt = time.Now().Add(ttl).Unix()
	}

	data, err := json.Marshal(fileEntry{Value: value, ExpiresAt: expiresAt})
	if err != nil {
		f.logger.Printf("❌ JSON encode hatası [%s]: %v", key, err)
		return fmt.Errorf("json encode failed: %w", err)
	}

	path := f.filePath(key)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache subdirectory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		f.logger.Printf("❌ File cache yazma hatası [%s]: %v", key, err)
		return fmt.Errorf("file cache write failed: %w", err)
	}

	return nil
}

// Delete, cache'den veri siler. Key yoksa sessizce geçer.
func (f *FileCache) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.filePath(key)); err != nil && !os.IsNotExist(err) {
		f.logger.Printf("❌ File cache silme hatası [%s]: %v", key, err)
		return fmt.Errorf("file cache delete failed: %w", err)
	}

	return nil
}

// Has, key'in cache'de olup olmadığını kontrol eder.
func (f *FileCache) Has(key string) (bool, error) {
	val, err := f.Get(key)
	if err != nil {
		return false, err
	}
	return val != nil, nil
}

// Remember, cache'den okur; bulamazsa callback'i çalıştırıp cache'ler.
func (f *FileCache) Remember(key string, ttl time.Duration, callback func() (interface{}, error)) (interface{}, error) {
	val, err := f.Get(key)
	if err != nil {
		return nil, err
	}
	if val != nil {
		return val, nil
	}

	result, err := callback()
	if err != nil {
		return nil, err
	}

	if err := f.Set(key, result, ttl); err != nil {
		f.logger.Printf("⚠️  Remember cache yazma hatası [%s]: %v", key, err)
	}

	return result, nil
}

// Flush, cache dizinini tamamen temizleyip yeniden oluşturur.
func (f *FileCache) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.RemoveAll(f.dir); err != nil {
		f.logger.Printf("❌ Cache temizleme hatası: %v", err)
		return fmt.Errorf("cache flush failed: %w", err)
	}
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("failed to recreate cache directory: %w", err)
	}

	return nil
}

// GC, expired ve corrupt dosyaları temizler ve silinen dosya sayısını
// döndürür. Kütüphane arka planda goroutine çalıştırmaz; periyodik temizlik
// çağıranın sorumluluğundadır.
func (f *FileCache) GC() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now().Unix()
	var cleaned int

	err := filepath.Walk(f.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		var entry fileEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			if os.Remove(path) == nil {
				cleaned++
			}
			return nil
		}

		if entry.ExpiresAt > 0 && now > entry.ExpiresAt {
			if os.Remove(path) == nil {
				cleaned++
			}
		}

		return nil
	})
	if err != nil {
		return cleaned, fmt.Errorf("cache gc failed: %w", err)
	}

	if cleaned > 0 {
		f.logger.Printf("🧹 Cache temizliği: %d expired dosya silindi", cleaned)
	}

	return cleaned, nil
}

// Stats, file cache istatistiklerini döndürür.
func (f *FileCache) Stats() map[string]interface{} {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var fileCount int
	var totalSize int64

	filepath.Walk(f.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		fileCount++
		totalSize += info.Size()
		return nil
	})

	return map[string]interface{}{
		"driver":     "file",
		"directory":  f.dir,
		"file_count": fileCount,
		"total_size": totalSize,
	}
}

// remove, bir cache dosyasını write lock altında siler.
func (f *FileCache) remove(path string) {
	f.mu.Lock()
	os.Remove(path)
	f.mu.Unlock()
}
