// Package hammer runs a test body from many goroutines at once, to surface data races under `go test -race`.
package hammer

import (
	"runtime"
	"sync"
	"testing"
)

// Hammer invokes a test concurrently in P goroutines N times per goroutine.
//
// Ex.
//
//	P, N := hammer.Size(8, 1000)
//	hammer.NewHammer(t, P, N).Run(func(p, n int) {
//		res, err := fn.Call(api.ValueI32(int32(p)), api.ValueI32(int32(n)))
//		require.NoError(t, err)
//	}, nil)
//
//	if t.Failed() {
//		return // At least one goroutine failed, so return now.
//	}
type Hammer interface {
	// Run invokes test in P goroutines, each looping N times with its own p and n.
	//
	// onRunning, if not nil, is invoked once all goroutines are started, but before any of them calls test.
	Run(test func(p, n int), onRunning func())
}

// NewHammer returns a Hammer initialized to the count of goroutines (P) and iterations per goroutine (N).
func NewHammer(t testing.TB, P, N int) Hammer {
	return &hammer{t: t, P: P, N: N}
}

// Size returns P and N, lowered when the test is run with -test.short.
func Size(P, N int) (int, int) {
	if testing.Short() {
		return P / 2, N / 10
	}
	return P, N
}

type hammer struct {
	t testing.TB
	// P is the count of goroutines.
	P int
	// N is the count of iterations per goroutine.
	N int
}

// Run implements Hammer.Run
func (h *hammer) Run(test func(p, n int), onRunning func()) {
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(h.P / 2)) // Force goroutines to switch cores.

	var started, release, done sync.WaitGroup
	started.Add(h.P)
	release.Add(1)
	done.Add(h.P)

	for p := 0; p < h.P; p++ {
		go func(p int) {
			defer done.Done()
			defer func() {
				// A failing require.XX panics inside the goroutine, so report it on the test instead.
				if recovered := recover(); recovered != nil {
					h.t.Error(recovered)
				}
			}()

			started.Done()
			release.Wait()
			for n := 0; n < h.N; n++ {
				test(p, n)
			}
		}(p)
	}

	started.Wait()
	if onRunning != nil {
		onRunning()
	}
	release.Done()
	done.Wait()
}
