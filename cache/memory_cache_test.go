package cache

import (
	"errors"
	"testing"
	"time"
)

// TestMemoryCache_SetGet tests basic write/read round-trip
func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()

	if err := c.Set("key", "value", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := c.Get("key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != "value" {
		t.Errorf("Expected 'value', got %v", val)
	}
}

// TestMemoryCache_Miss tests that a missing key returns (nil, nil)
func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache()

	val, err := c.Get("missing")
	if err != nil {
		t.Fatalf("Get on missing key should not error: %v", err)
	}
	if val != nil {
		t.Errorf("Expected nil for cache miss, got %v", val)
	}
}

// TestMemoryCache_TTLExpiry tests that expired entries become misses
func TestMemoryCache_TTLExpiry(t *testing.T) {
	c := NewMemoryCache()

	if err := c.Set("short", "lived", 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	val, err := c.Get("short")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != nil {
		t.Errorf("Expected expired entry to be a miss, got %v", val)
	}
}

// TestMemoryCache_ZeroTTLNeverExpires tests the unlimited-TTL form
func TestMemoryCache_ZeroTTLNeverExpires(t *testing.T) {
	c := NewMemoryCache()

	if err := c.Set("forever", 1, 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, _ := c.Get("forever")
	if val != 1 {
		t.Errorf("Zero-TTL entry should persist, got %v", val)
	}
}

// TestMemoryCache_DeleteAndHas tests deletion and existence checks
func TestMemoryCache_DeleteAndHas(t *testing.T) {
	c := NewMemoryCache()

	_ = c.Set("key", "value", time.Minute)

	exists, _ := c.Has("key")
	if !exists {
		t.Error("Expected Has to report true")
	}

	if err := c.Delete("key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	exists, _ = c.Has("key")
	if exists {
		t.Error("Expected Has to report false after Delete")
	}
}

// TestMemoryCache_Remember tests the read-through pattern
func TestMemoryCache_Remember(t *testing.T) {
	c := NewMemoryCache()

	computed := 0
	callback := func() (interface{}, error) {
		computed++
		return "result", nil
	}

	// İlk çağrı callback'i çalıştırır
	val, err := c.Remember("key", time.Minute, callback)
	if err != nil {
		t.Fatalf("Remember failed: %v", err)
	}
	if val != "result" || computed != 1 {
		t.Errorf("Expected computed result, got %v (computed=%d)", val, computed)
	}

	// İkinci çağrı cache'den döner
	val, err = c.Remember("key", time.Minute, callback)
	if err != nil {
		t.Fatalf("Remember failed: %v", err)
	}
	if val != "result" || computed != 1 {
		t.Errorf("Expected cache hit without recompute, got %v (computed=%d)", val, computed)
	}
}

// TestMemoryCache_RememberCallbackError tests that callback errors propagate
func TestMemoryCache_RememberCallbackError(t *testing.T) {
	c := NewMemoryCache()

	wantErr := errors.New("compute failed")
	_, err := c.Remember("key", time.Minute, func() (interface{}, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("Expected callback error to propagate, got %v", err)
	}

	// Hatalı sonuç cache'lenmemiş olmalı
	val, _ := c.Get("key")
	if val != nil {
		t.Errorf("Failed computation should not be cached, got %v", val)
	}
}

// TestMemoryCache_Flush tests clearing all entries
func TestMemoryCache_Flush(t *testing.T) {
	c := NewMemoryCache()

	_ = c.Set("a", 1, time.Minute)
	_ = c.Set("b", 2, time.Minute)

	if err := c.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	if c.Size() != 0 {
		t.Errorf("Expected empty cache after Flush, size=%d", c.Size())
	}
}
