// Package parallel splits element-wise tensor work across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how work is split.
type Config struct {
	Enabled  bool // Whether work may run on more than one goroutine.
	Workers  int  // Upper bound on goroutines per call.
	MinChunk int  // Minimum elements per goroutine.
}

// DefaultConfig uses every CPU with chunks of at least 4096 elements.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:  n > 1,
		Workers:  n,
		MinChunk: 4096,
	}
}

// Chunks calls f(lo, hi) over disjoint half-open ranges covering [0, n) and
// returns once every call has finished. f runs inline when parallelism is
// disabled or n fits in a single chunk, so it must be safe to call
// concurrently on disjoint ranges.
func Chunks(n int, f func(lo, hi int), cfg Config) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || cfg.Workers < 2 || n < 2*cfg.MinChunk {
		f(0, n)
		return
	}

	size := max((n+cfg.Workers-1)/cfg.Workers, cfg.MinChunk)

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			f(lo, hi)
		}()
	}
	wg.Wait()
}

// Rows calls f(i) for every row in [0, rows), grouping rows so each
// goroutine covers at least MinChunk elements of a row-major matrix with
// cols columns.
func Rows(rows, cols int, f func(i int), cfg Config) {
	perRow := max(cols, 1)
	cfg.MinChunk = max((cfg.MinChunk+perRow-1)/perRow, 1)
	Chunks(rows, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			f(i)
		}
	}, cfg)
}
