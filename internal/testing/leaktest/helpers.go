package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// GoroutineChecker compares goroutine counts before and after a block of work
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	settle()
	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test if more than tolerance goroutines are still running.
// It polls for a short while so goroutines that are already exiting are not reported.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(500 * time.Millisecond)
	for {
		settle()
		leaked := runtime.NumGoroutine() - g.before
		if leaked <= tolerance {
			return
		}
		if time.Now().After(deadline) {
			g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
				g.before, g.before+leaked, leaked, tolerance)
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
}

// CheckNoGoroutineLeak runs fn and asserts it leaves no goroutines behind
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

func settle() {
	runtime.Gosched()
	runtime.GC()
	time.Sleep(10 * time.Millisecond)
}
