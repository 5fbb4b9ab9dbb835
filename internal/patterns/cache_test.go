package patterns

import (
	"fmt"
	"sync"
	"testing"
)

func TestCacheHitReturnsSameResult(t *testing.T) {
	d := New(Options{})

	text := "Moreover, we delve into the details."
	first, err := d.Analyze(text, SensitivityMedium)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	second, err := d.Analyze(text, SensitivityMedium)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if first != second {
		t.Fatalf("expected repeat call to be served from cache")
	}

	hits, misses, _ := d.CacheStats()
	if hits != 1 || misses != 1 {
		t.Fatalf("expected 1 hit / 1 miss, got %d / %d", hits, misses)
	}
}

func TestCacheKeyIncludesSensitivity(t *testing.T) {
	d := New(Options{})

	text := "Moreover, we delve into the details."
	med, _ := d.Analyze(text, SensitivityMedium)
	high, _ := d.Analyze(text, SensitivityHigh)
	if med == high {
		t.Fatalf("different sensitivities must not share a cache entry")
	}
	if med.Score == high.Score {
		t.Fatalf("expected different scores, got %v for both", med.Score)
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := newResultCache(2)

	r := &Result{}
	c.put("a", r)
	c.put("b", r)

	// Touch "a" so "b" becomes the eviction candidate.
	if _, ok := c.get("a"); !ok {
		t.Fatalf("expected a to be present")
	}
	c.put("c", r)

	if _, ok := c.get("b"); ok {
		t.Fatalf("expected b to be evicted")
	}
	if _, ok := c.get("a"); !ok {
		t.Fatalf("expected a to survive")
	}
	if _, ok := c.get("c"); !ok {
		t.Fatalf("expected c to be present")
	}
	if c.len() != 2 {
		t.Fatalf("expected size 2, got %d", c.len())
	}
}

func TestCacheDisabled(t *testing.T) {
	d := New(Options{CacheCapacity: -1})

	text := "Moreover, we delve into the details."
	first, _ := d.Analyze(text, SensitivityMedium)
	second, _ := d.Analyze(text, SensitivityMedium)
	if first == second {
		t.Fatalf("disabled cache must not share results")
	}

	hits, _, size := d.CacheStats()
	if hits != 0 || size != 0 {
		t.Fatalf("disabled cache reported hits=%d size=%d", hits, size)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	d := New(Options{CacheCapacity: 8})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			text := fmt.Sprintf("Moreover, sample number %d continues here.", n%4)
			for j := 0; j < 50; j++ {
				if _, err := d.Analyze(text, SensitivityMedium); err != nil {
					t.Errorf("analyze: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestFingerprintDistinguishesInputs(t *testing.T) {
	a := fingerprint("text", SensitivityLow)
	b := fingerprint("text", SensitivityHigh)
	c := fingerprint("other", SensitivityLow)
	if a == b || a == c {
		t.Fatalf("fingerprint collisions: %s %s %s", a, b, c)
	}
	if a != fingerprint("text", SensitivityLow) {
		t.Fatalf("fingerprint not stable")
	}
}
