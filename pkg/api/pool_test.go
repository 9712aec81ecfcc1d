package api

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestPoolCountsAnalysisRequests(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{
		MaxFastWorkers: 2,
		MaxSlowWorkers: 1,
	})

	ctx := context.Background()
	if err := pool.AcquireFast(ctx); err != nil {
		t.Fatalf("analysis slot: %v", err)
	}

	stats := pool.Stats()
	if stats.ActiveFast != 1 {
		t.Errorf("ActiveFast = %d during a plays request, want 1", stats.ActiveFast)
	}

	pool.ReleaseFast()
	stats = pool.Stats()
	if stats.ActiveFast != 0 {
		t.Errorf("ActiveFast = %d after the request finished, want 0", stats.ActiveFast)
	}
	if stats.TotalFast != 1 {
		t.Errorf("TotalFast = %d, want 1", stats.TotalFast)
	}
}

func TestPoolRefusesStreamsWhenGameSlotsFull(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{
		MaxFastWorkers: 10,
		MaxSlowWorkers: 2,
	})

	// Two self-play streams running, a third viewer is turned away.
	if !pool.TryAcquireSlow() {
		t.Fatal("first game slot should be free")
	}
	if !pool.TryAcquireSlow() {
		t.Fatal("second game slot should be free")
	}
	if pool.TryAcquireSlow() {
		t.Error("third stream should be refused, not queued")
	}

	stats := pool.Stats()
	if stats.ActiveSlow != 2 {
		t.Errorf("ActiveSlow = %d with two games running, want 2", stats.ActiveSlow)
	}

	pool.ReleaseSlow()
	if !pool.TryAcquireSlow() {
		t.Error("a finished game should free its slot")
	}

	pool.ReleaseSlow()
	pool.ReleaseSlow()
	stats = pool.Stats()
	if stats.TotalSlow != 3 {
		t.Errorf("TotalSlow = %d, want 3", stats.TotalSlow)
	}
}

func TestPoolAbandonedAnalysisRequestStopsWaiting(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{
		MaxFastWorkers: 1,
		MaxSlowWorkers: 1,
	})

	// One plays request holds the only analysis slot.
	if err := pool.AcquireFast(context.Background()); err != nil {
		t.Fatalf("analysis slot: %v", err)
	}

	// A second request whose client has already gone away must not
	// block behind it.
	gone, cancel := context.WithCancel(context.Background())
	cancel()
	if err := pool.AcquireFast(gone); err != context.Canceled {
		t.Errorf("AcquireFast = %v for a cancelled request, want context.Canceled", err)
	}

	pool.ReleaseFast()
}

func TestPoolConcurrentAnalysisBursts(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{
		MaxFastWorkers: 5,
		MaxSlowWorkers: 2,
	})

	var wg sync.WaitGroup
	ctx := context.Background()

	// Ten overlapping plays requests through five slots.
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := pool.AcquireFast(ctx); err != nil {
				t.Errorf("analysis slot: %v", err)
				return
			}
			time.Sleep(10 * time.Millisecond)
			pool.ReleaseFast()
		}()
	}

	wg.Wait()

	stats := pool.Stats()
	if stats.TotalFast != 10 {
		t.Errorf("TotalFast = %d after the burst, want 10", stats.TotalFast)
	}
}

func TestPoolStatsReportCapacity(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{
		MaxFastWorkers: 10,
		MaxSlowWorkers: 4,
	})

	stats := pool.Stats()
	if stats.MaxFast != 10 {
		t.Errorf("MaxFast = %d, want 10", stats.MaxFast)
	}
	if stats.MaxSlow != 4 {
		t.Errorf("MaxSlow = %d, want 4", stats.MaxSlow)
	}
}
