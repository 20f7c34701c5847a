package iot_test

import (
	iot "edgereach.xyz/sensor-dashboard-service/pkg/iot"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRateLimiterStore_Basic(t *testing.T) {
	store := iot.NewRateLimiterStore(1, 2)

	limiter := store.GetLimiter("00000000000000A1")
	if limiter == nil {
		t.Fatal("expected limiter, got nil")
	}
	if limiter.Limit() != 1 {
		t.Errorf("expected limit 1, got %v", limiter.Limit())
	}
}

func TestRateLimiterStore_CustomLimit(t *testing.T) {
	store := iot.NewRateLimiterStore(1, 2)

	// a chattier device gets its own budget without touching the default
	store.SetLimiter("00000000000000A2", 5, 10)
	limiter := store.GetLimiter("00000000000000A2")

	if limiter.Limit() != 5 {
		t.Errorf("expected limit 5, got %v", limiter.Limit())
	}
	if limiter.Burst() != 10 {
		t.Errorf("expected burst 10, got %v", limiter.Burst())
	}
}

func TestRateLimiterStore_Concurrency(t *testing.T) {
	store := iot.NewRateLimiterStore(10, 5)
	devEUI := uuid.NewString()

	var wg sync.WaitGroup

	// concurrent webhook deliveries for one device must share one limiter
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter := store.GetLimiter(devEUI)
			if limiter == nil {
				t.Error("expected limiter, got nil")
			}
		}()
	}

	wg.Wait()

	limiter := store.GetLimiter(devEUI)
	if limiter == nil {
		t.Error("expected limiter to exist after concurrent access")
	}
}

func TestRateLimiter_Enforcement(t *testing.T) {
	store := iot.NewRateLimiterStore(2, 2) // 2 events/sec

	devEUI := uuid.NewString()
	limiter := store.GetLimiter(devEUI)

	firstTry := limiter.Allow()
	secondTry := limiter.Allow()
	if !firstTry || !secondTry {
		t.Fatal("expected first two calls to be allowed")
	}

	if limiter.Allow() {
		t.Error("expected third call to be rate limited")
	}

	// Wait for refill
	time.Sleep(600 * time.Millisecond)
	if !limiter.Allow() {
		t.Error("expected one token to be available after refill")
	}
}
