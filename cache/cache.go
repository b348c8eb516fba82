// -----------------------------------------------------------------------------
// Query Result Cache Interface
// -----------------------------------------------------------------------------
// Sorgu sonuçlarının saklanması için driver interface'i.
// Driver'lar: Memory (test/development), Redis (production).
//
// Builder tarafında kullanım:
//
//	rows, err := conn.Table("events").
//	    Remember(store, "events:upcoming", 10*time.Minute).
//	    GetMaps()
// -----------------------------------------------------------------------------

package cache

import (
	"time"
)

// Cache, sorgu sonucu cache driver'larının implement ettiği interface.
type Cache interface {
	// Get, cache'den veri okur. Key bulunamazsa (nil, nil) döner.
	Get(key string) (interface{}, error)

	// Set, cache'e veri yazar. ttl = 0 süresiz saklar.
	Set(key string, value interface{}, ttl time.Duration) error

	// Delete, key'i siler. Key yoksa sessizce geçer.
	Delete(key string) error

	// Has, key'in cache'de olup olmadığını kontrol eder.
	Has(key string) (bool, error)

	// Remember, cache'den okur; bulamazsa callback'i çalıştırıp sonucu
	// cache'ler ve döndürür.
	Remember(key string, ttl time.Duration, callback func() (interface{}, error)) (interface{}, error)

	// Flush, driver'ın gördüğü tüm key'leri temizler.
	Flush() error
}

// Stats, istatistik sunan driver'ların opsiyonel interface'i.
type Stats interface {
	Stats() map[string]interface{}
}
