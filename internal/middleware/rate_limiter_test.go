package middleware

import (
	"sync"
	"testing"
	"time"
)

func TestFixedWindowLimiter(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	l := NewFixedWindowLimiter(3, time.Minute)
	l.now = func() time.Time { return now }

	for i := 1; i <= 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("Expected request %d to be allowed", i)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("Expected the fourth request to be rejected")
	}
	if !l.Allow("5.6.7.8") {
		t.Error("Expected another client to have its own window")
	}

	now = now.Add(time.Minute)
	if !l.Allow("1.2.3.4") {
		t.Error("Expected a new window to allow the client again")
	}
}

func TestFixedWindowLimiterEvict(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	l := NewFixedWindowLimiter(1, time.Minute)
	l.now = func() time.Time { return now }

	l.Allow("a")
	now = now.Add(30 * time.Second)
	l.Allow("b")
	now = now.Add(45 * time.Second)

	if removed := l.Evict(); removed != 1 {
		t.Errorf("Expected 1 expired window, but got %d", removed)
	}
	if l.Size() != 1 {
		t.Errorf("Expected 1 tracked key, but got %d", l.Size())
	}
}

func TestFixedWindowLimiterConcurrent(t *testing.T) {
	l := NewFixedWindowLimiter(50, time.Hour)
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("same") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if allowed != 50 {
		t.Errorf("Expected exactly 50 allowed requests, but got %d", allowed)
	}
}
