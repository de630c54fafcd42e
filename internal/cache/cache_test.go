package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestCache_BasicOperations(t *testing.T) {
	c := NewCache[string, string]()

	t.Run("Set and Get", func(t *testing.T) {
		c.Set("demand-letter", "DEMAND")
		got, ok := c.Get("demand-letter")
		if !ok || got != "DEMAND" {
			t.Errorf("Expected DEMAND, got %q (ok=%v)", got, ok)
		}
	})

	t.Run("Missing key", func(t *testing.T) {
		if _, ok := c.Get("missing"); ok {
			t.Error("Expected key to not exist")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		c.Set("gone", "x")
		c.Delete("gone")
		if _, ok := c.Get("gone"); ok {
			t.Error("Expected deleted key to be gone")
		}
	})

	t.Run("Take removes the entry", func(t *testing.T) {
		c.Set("once", "pdf")
		got, ok := c.Take("once")
		if !ok || got != "pdf" {
			t.Fatalf("Expected first Take to return pdf, got %q (ok=%v)", got, ok)
		}
		if _, ok := c.Take("once"); ok {
			t.Error("Expected second Take to miss")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		c.Clear()
		if c.Len() != 0 {
			t.Errorf("Expected empty cache, got %d items", c.Len())
		}
	})
}

func TestCache_TakeIsExclusive(t *testing.T) {
	c := NewCache[string, int]()
	c.Set("token", 1)

	var wg sync.WaitGroup
	var mu sync.Mutex
	hits := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := c.Take("token"); ok {
				mu.Lock()
				hits++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if hits != 1 {
		t.Errorf("Expected exactly one successful Take, got %d", hits)
	}
}

func TestCache_Concurrency(t *testing.T) {
	c := NewCache[string, int]()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k-%d-%d", n, j)
				c.Set(key, j)
				if v, ok := c.Get(key); !ok || v != j {
					t.Errorf("Expected %d for %s, got %d (ok=%v)", j, key, v, ok)
				}
			}
		}(i)
	}
	wg.Wait()

	if c.Len() != 2000 {
		t.Errorf("Expected 2000 items, got %d", c.Len())
	}
}

func TestExpiring(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	e := NewExpiring[string, []string](time.Minute)
	e.now = func() time.Time { return now }

	e.Set("templates", []string{"rent-default"})

	t.Run("Fresh entry is served", func(t *testing.T) {
		got, ok := e.Get("templates")
		if !ok || len(got) != 1 {
			t.Fatalf("Expected cached templates, got %v (ok=%v)", got, ok)
		}
	})

	t.Run("Entry expires after the TTL", func(t *testing.T) {
		now = now.Add(time.Minute)
		if _, ok := e.Get("templates"); ok {
			t.Error("Expected entry to be expired")
		}
	})

	t.Run("Sweep drops expired entries", func(t *testing.T) {
		e.Sweep()
		if e.Len() != 0 {
			t.Errorf("Expected no entries after sweep, got %d", e.Len())
		}
	})

	t.Run("Take expired entry misses", func(t *testing.T) {
		e.Set("blob", []string{"x"})
		now = now.Add(2 * time.Minute)
		if _, ok := e.Take("blob"); ok {
			t.Error("Expected expired Take to miss")
		}
	})
}

func TestExpiring_DisabledTTL(t *testing.T) {
	e := NewExpiring[string, string](0)
	e.Set("k", "v")
	if _, ok := e.Get("k"); ok {
		t.Error("Expected zero TTL to store nothing")
	}
}

func TestStaticHash(t *testing.T) {
	SetStaticHash("/static/app.css", "abc123")
	if got, ok := GetStaticHash("/static/app.css"); !ok || got != "abc123" {
		t.Errorf("Expected abc123, got %q (ok=%v)", got, ok)
	}
	if _, ok := GetStaticHash("/static/missing.js"); ok {
		t.Error("Expected missing static hash")
	}
}
