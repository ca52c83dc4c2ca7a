package state

import (
	"sync"
	"testing"
)

func TestCacheLastSearch(t *testing.T) {
	cache := NewCache()
	cache.SetLastSearch("label:bug")
	if got := cache.LastSearch(); got != "label:bug" {
		t.Fatalf("expected stored search, got %s", got)
	}
}

func TestCacheResolveIssue(t *testing.T) {
	cache := NewCache()

	if _, ok := cache.ResolveIssue(0); ok {
		t.Fatalf("expected no issue before any was touched")
	}

	cache.SetLastIssue(7)
	cache.SetLastIssue(-1)

	if got, ok := cache.ResolveIssue(0); !ok || got != 7 {
		t.Fatalf("ResolveIssue(0) = %d, %t; want 7, true", got, ok)
	}
	if got, ok := cache.ResolveIssue(3); !ok || got != 3 {
		t.Fatalf("explicit number should win, got %d", got)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	cache := NewCache()

	var wg sync.WaitGroup
	for i := 1; i <= 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.SetLastIssue(i)
			_ = cache.LastIssue()
		}()
	}
	wg.Wait()

	if got := cache.LastIssue(); got < 1 || got > 16 {
		t.Fatalf("unexpected last issue %d", got)
	}
}
