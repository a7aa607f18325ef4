package leaktest

import (
	"sync"
	"testing"
)

func TestGoroutineChecker_NoLeak(t *testing.T) {
	NewGoroutineChecker(t).Check(0)
}

func TestGoroutineChecker_WithinTolerance(t *testing.T) {
	checker := NewGoroutineChecker(t)

	done := make(chan struct{})
	go func() { <-done }()
	defer close(done)

	checker.Check(1)
}

func TestCheckNoGoroutineLeak_JoinedGoroutines(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() { defer wg.Done() }()
		}
		wg.Wait()
	})
}
