package imageutil

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minParallelRows is the smallest row count worth splitting across
// goroutines.
const minParallelRows = 64

// forEachRow calls fn for every y in [lo, hi). Rows are split into
// contiguous bands that run concurrently; fn must only write output cells
// belonging to its own row.
func forEachRow(lo, hi int, fn func(y int)) {
	rows := hi - lo
	if rows <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers < 2 || rows < minParallelRows {
		for y := lo; y < hi; y++ {
			fn(y)
		}
		return
	}

	band := (rows + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := lo; start < hi; start += band {
		start, end := start, start+band
		if end > hi {
			end = hi
		}
		g.Go(func() error {
			for y := start; y < end; y++ {
				fn(y)
			}
			return nil
		})
	}
	_ = g.Wait()
}
