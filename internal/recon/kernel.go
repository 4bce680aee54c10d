package recon

import (
	"errors"
	"math"
)

// DefaultBandwidth is the kernel bandwidth used when the caller does not
// supply one. Matches the acquisition-software default.
const DefaultBandwidth = 5.0

// maxDistanceFactor bounds the kernel window: weight beyond
// maxDistanceFactor*bandwidth pixels is treated as negligible.
const maxDistanceFactor = 5

// ErrInvalidBandwidth is returned when the kernel bandwidth is not a
// positive finite number. It is detected before any pixel task is
// scheduled.
var ErrInvalidBandwidth = errors.New("recon: kernel bandwidth must be a positive finite number")

// KernelParams configures the Gaussian smoothing kernel.
type KernelParams struct {
	Bandwidth float64
}

// Validate rejects non-positive, NaN and infinite bandwidths.
func (p KernelParams) Validate() error {
	if math.IsNaN(p.Bandwidth) || math.IsInf(p.Bandwidth, 0) || p.Bandwidth <= 0 {
		return ErrInvalidBandwidth
	}
	return nil
}

// BandwidthSquare is the precomputed denominator constant of the kernel.
func (p KernelParams) BandwidthSquare() float64 { return p.Bandwidth * p.Bandwidth }

// MaxPixelDistance is the window radius in pixels: round(5*bandwidth).
func (p KernelParams) MaxPixelDistance() int {
	return int(math.Round(p.Bandwidth * maxDistanceFactor))
}
