package recon

import (
	"context"
	"fmt"
	"math"
	"sync"
)

// globalStats tracks the running minimum and maximum of the density field
// during a single reconstruction. It is the only state shared between
// pixel tasks; every update goes through the mutex.
type globalStats struct {
	mu   sync.Mutex
	min  float64 // +Inf until the first merge
	max  float64 // -Inf until the first merge
	done int
}

func newGlobalStats() *globalStats {
	return &globalStats{min: math.Inf(1), max: math.Inf(-1)}
}

// merge folds one task's value into the running min/max and reports
// progress. The progress callback runs inside the critical section so
// callers observe strictly increasing done counts; it must return quickly.
func (s *globalStats) merge(v float64, total int, progress ProgressFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v < s.min {
		s.min = v
	}
	if v > s.max {
		s.max = v
	}
	s.done++
	if progress != nil {
		progress(s.done, total)
	}
}

// pixelTask is one unit of work: a single output coordinate. The source
// grid, density field and kernel constants it needs are shared read-only
// through the owning reduction.
type pixelTask struct {
	x, y int
}

// reduction executes one full estimation pass over the density field.
type reduction struct {
	src              Source
	field            *DensityField
	bandwidthSquare  float64
	maxPixelDistance int
	stats            *globalStats
	progress         ProgressFunc
	workers          int
}

// run distributes one pixel task per output cell across the worker pool
// and blocks until every task has completed. On the first task failure the
// remaining work is cancelled and the failure is returned; the field is
// then incomplete and must be discarded by the caller.
func (r *reduction) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	total := r.field.W * r.field.H
	tasks := make(chan pixelTask)

	var (
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				if ctx.Err() != nil {
					return
				}
				if err := r.runTask(t, total); err != nil {
					fail(err)
					return
				}
			}
		}()
	}

feed:
	for y := 0; y < r.field.H; y++ {
		for x := 0; x < r.field.W; x++ {
			select {
			case tasks <- pixelTask{x: x, y: y}:
			case <-ctx.Done():
				break feed
			}
		}
	}
	close(tasks)

	// Full barrier: no task may be observed in flight after this point.
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// runTask estimates one pixel, stores it in the cell the task owns, and
// merges the value into the shared stats. A panic inside the estimation
// (e.g. an out-of-range source access) is converted into an error so the
// reconstruction aborts instead of silently dropping the pixel.
func (r *reduction) runTask(t pixelTask, total int) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("pixel (%d,%d): %v", t.x, t.y, p)
		}
	}()

	v := EstimateDensity(r.src, t.x, t.y, r.bandwidthSquare, r.maxPixelDistance)
	r.field.Cells[r.field.Idx(t.x, t.y)] = v
	r.stats.merge(v, total, r.progress)
	return nil
}
