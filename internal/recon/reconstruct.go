package recon

import (
	"context"
	"fmt"
	"runtime"
)

// ProgressFunc observes reconstruction progress. It is invoked after each
// completed pixel task with the number of pixels finished so far and the
// total. Calls are serialized and done counts strictly increase; the
// callback is observational only and must not block.
type ProgressFunc func(done, total int)

type options struct {
	workers  int
	progress ProgressFunc
}

// Option configures a reconstruction run.
type Option func(*options)

// WithWorkers sets the worker pool size. Values below 1 select the default
// of runtime.NumCPU()+1. Pool size never changes the result, only how fast
// it arrives.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithProgress registers a progress callback.
func WithProgress(f ProgressFunc) Option {
	return func(o *options) { o.progress = f }
}

// Result carries the reconstructed image together with the density field
// and the statistics the normalization was derived from.
type Result struct {
	Output     *OutputGrid
	Field      *DensityField
	MinDensity float64
	MaxDensity float64
}

// Reconstruct builds the smoothed 16-bit density image for src.
//
// Sequence: validate parameters, estimate every pixel on a bounded worker
// pool, join, then rescale the field using the reduced min/max. The
// normalization pass never starts before the join: it consumes the final
// statistics. A failed or cancelled reconstruction returns an error, never
// a partially computed image.
func Reconstruct(ctx context.Context, src Source, params KernelParams, opts ...Option) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	w, h := src.Width(), src.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("recon: source grid has invalid dimensions %dx%d", w, h)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.NumCPU() + 1
	}

	field := NewDensityField(w, h)
	stats := newGlobalStats()
	red := &reduction{
		src:              src,
		field:            field,
		bandwidthSquare:  params.BandwidthSquare(),
		maxPixelDistance: params.MaxPixelDistance(),
		stats:            stats,
		progress:         o.progress,
		workers:          o.workers,
	}
	if err := red.run(ctx); err != nil {
		return nil, fmt.Errorf("density estimation: %w", err)
	}

	out := Normalize(field, stats.min, stats.max)
	return &Result{
		Output:     out,
		Field:      field,
		MinDensity: stats.min,
		MaxDensity: stats.max,
	}, nil
}
