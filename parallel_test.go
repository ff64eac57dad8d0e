package houdiniswap

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestExecuteParallelPreservesOrder(t *testing.T) {
	const n = 20
	calls := make([]func() (any, error), n)
	for i := 0; i < n; i++ {
		i := i
		calls[i] = func() (any, error) {
			// Later calls finish first to exercise order preservation.
			time.Sleep(time.Duration(n-i) * time.Millisecond)
			return i, nil
		}
	}

	results := ExecuteParallel(calls, 8)
	if len(results) != n {
		t.Fatalf("Expected %d results, got %d", n, len(results))
	}
	for i, result := range results {
		if result.Err != nil {
			t.Errorf("Position %d returned error: %v", i, result.Err)
		}
		if result.Value != i {
			t.Errorf("Expected value %d at position %d, got %v", i, i, result.Value)
		}
	}
}

func TestExecuteParallelFailureIsolated(t *testing.T) {
	failAt := 3
	calls := make([]func() (any, error), 6)
	for i := range calls {
		i := i
		calls[i] = func() (any, error) {
			if i == failAt {
				return nil, fmt.Errorf("call %d failed", i)
			}
			return i * 10, nil
		}
	}

	results := ExecuteParallel(calls, 2)
	if len(results) != len(calls) {
		t.Fatalf("Expected %d results, got %d", len(calls), len(results))
	}
	for i, result := range results {
		if i == failAt {
			if result.Err == nil {
				t.Errorf("Expected error at position %d", i)
			}
			continue
		}
		if result.Err != nil {
			t.Errorf("Position %d returned unexpected error: %v", i, result.Err)
		}
		if result.Value != i*10 {
			t.Errorf("Expected %d at position %d, got %v", i*10, i, result.Value)
		}
	}
}

func TestExecuteParallelBoundsWorkers(t *testing.T) {
	var active, peak int32
	calls := make([]func() (any, error), 12)
	for i := range calls {
		calls[i] = func() (any, error) {
			current := atomic.AddInt32(&active, 1)
			for {
				observed := atomic.LoadInt32(&peak)
				if current <= observed || atomic.CompareAndSwapInt32(&peak, observed, current) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&active, -1)
			return nil, nil
		}
	}

	ExecuteParallel(calls, 3)
	if got := atomic.LoadInt32(&peak); got > 3 {
		t.Errorf("Expected at most 3 concurrent workers, observed %d", got)
	}
}

func TestExecuteParallelDefaults(t *testing.T) {
	if results := ExecuteParallel(nil, 5); results != nil {
		t.Errorf("Expected nil for empty input, got %v", results)
	}

	calls := []func() (any, error){func() (any, error) { return "ok", nil }}
	results := ExecuteParallel(calls, 0) // zero workers falls back to the default
	if len(results) != 1 || results[0].Value != "ok" {
		t.Errorf("Unexpected results: %v", results)
	}
}
